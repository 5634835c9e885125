package companyinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/company"
	"github.com/jmoiron/sqlx"
)

// PostgresCompanyRepository implements company.Repository using PostgreSQL
type PostgresCompanyRepository struct {
	db *sqlx.DB
}

func NewPostgresCompanyRepository(db *sqlx.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

// GetByID retrieves a company by ID
func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	query := `
		SELECT id, name, COALESCE(description, '') AS description, COALESCE(website, '') AS website,
			COALESCE(logo_url, '') AS logo_url, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c company.Company
	if err := r.db.GetContext(ctx, &c, query, string(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrCompanyNotFound().WithDetail("company_id", id)
		}
		return nil, errx.Wrap(err, "failed to get company", errx.TypeInternal)
	}
	return &c, nil
}
