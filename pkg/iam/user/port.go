package user

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	FindByID(ctx context.Context, id kernel.UserID) (*User, error)
	FindByEmail(ctx context.Context, email kernel.Email) (*User, error)
}
