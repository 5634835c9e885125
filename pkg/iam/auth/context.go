package auth

import (
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext is the acting principal of a request
type AuthContext struct {
	UserID    kernel.UserID     `json:"user_id"`
	Email     kernel.Email      `json:"email,omitempty"`
	Role      Role              `json:"role"`
	CompanyID *kernel.CompanyID `json:"company_id,omitempty"`
}

// IsPlatformAdmin reports whether the principal bypasses company ownership checks
func (a *AuthContext) IsPlatformAdmin() bool {
	return a.Role == RoleAdmin
}

// IsCompanyScoped reports whether the principal acts for a single company
func (a *AuthContext) IsCompanyScoped() bool {
	return a.Role.IsCompanyRole()
}

// BelongsTo reports whether the principal is affiliated with companyID
func (a *AuthContext) BelongsTo(companyID kernel.CompanyID) bool {
	return a.CompanyID != nil && !a.CompanyID.IsEmpty() && *a.CompanyID == companyID
}

// HasRole reports whether the principal holds any of roles
func (a *AuthContext) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// SetAuthContext stores the principal on the request
func SetAuthContext(c *fiber.Ctx, ac *AuthContext) {
	c.Locals(authContextKey, ac)
}

// GetAuthContext extracts the principal set by the middleware
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	ac, ok := c.Locals(authContextKey).(*AuthContext)
	return ac, ok && ac != nil
}
