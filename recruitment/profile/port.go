package profile

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	// GetByUserID retrieves the user's profile, or ErrProfileNotFound
	GetByUserID(ctx context.Context, userID kernel.UserID) (*ApplicationProfile, error)

	// Upsert inserts the profile or replaces the one already stored for its user
	Upsert(ctx context.Context, p *ApplicationProfile) error
}
