package company

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	// GetByID retrieves a company by ID
	GetByID(ctx context.Context, id kernel.CompanyID) (*Company, error)
}
