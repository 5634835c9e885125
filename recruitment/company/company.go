package company

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// Company is an employer that owns job postings
type Company struct {
	ID          kernel.CompanyID `db:"id" json:"id"`
	Name        string           `db:"name" json:"name"`
	Description string           `db:"description" json:"description,omitempty"`
	Website     string           `db:"website" json:"website,omitempty"`
	LogoURL     kernel.BucketURL `db:"logo_url" json:"logo_url,omitempty"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}
