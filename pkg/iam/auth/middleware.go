package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenMiddleware authenticates bearer tokens on fiber routes
type TokenMiddleware struct {
	tokens TokenService
}

func NewTokenMiddleware(tokens TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens}
}

// Authenticate requires a valid bearer token and stores the AuthContext
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrMissingToken()
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return ErrInvalidToken().WithDetail("reason", "expected Bearer token")
		}

		ac, err := m.tokens.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		SetAuthContext(c, ac)
		return c.Next()
	}
}

// RequireRole rejects principals that hold none of roles
func (m *TokenMiddleware) RequireRole(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if !ac.HasRole(roles...) {
			return ErrForbidden().WithDetail("role", ac.Role)
		}
		return c.Next()
	}
}
