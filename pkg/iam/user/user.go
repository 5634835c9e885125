package user

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// User is an account that can sign in to the portal
type User struct {
	ID           kernel.UserID     `db:"id" json:"id"`
	Name         string            `db:"name" json:"name"`
	Email        kernel.Email      `db:"email" json:"email"`
	Phone        kernel.Phone      `db:"phone" json:"phone"`
	PasswordHash string            `db:"password_hash" json:"-"`
	Role         string            `db:"role" json:"role"`
	CompanyID    *kernel.CompanyID `db:"company_id" json:"company_id,omitempty"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
}

// HasCompany reports whether the user is affiliated with a company
func (u *User) HasCompany() bool {
	return u.CompanyID != nil && !u.CompanyID.IsEmpty()
}
