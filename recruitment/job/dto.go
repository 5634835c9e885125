package job

import (
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// CreateJobRequest - DTO for creating a new job
type CreateJobRequest struct {
	Title          kernel.JobTitle       `json:"title"`
	Description    kernel.JobDescription `json:"description"`
	Location       string                `json:"location"`
	Salary         string                `json:"salary"`
	EmploymentType EmploymentType        `json:"employment_type"`
	CompanyID      *kernel.CompanyID     `json:"company_id,omitempty"`
	ExpiresAt      *time.Time            `json:"expires_at,omitempty"`
}

// Validate checks the required fields of the request
func (r CreateJobRequest) Validate() error {
	if strings.TrimSpace(string(r.Title)) == "" {
		return ErrInvalidJob().WithDetail("field", "title")
	}
	if strings.TrimSpace(string(r.Description)) == "" {
		return ErrInvalidJob().WithDetail("field", "description")
	}
	if !r.EmploymentType.IsValid() {
		return ErrInvalidJob().
			WithDetail("field", "employment_type").
			WithDetail("allowed", []EmploymentType{EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship})
	}
	return nil
}

// UpdateJobStatusRequest - DTO for moderating a job
type UpdateJobStatusRequest struct {
	Status JobStatus `json:"status"`
}

// ListJobsFilter narrows job listings
type ListJobsFilter struct {
	Status    JobStatus
	CompanyID kernel.CompanyID
	Search    string
}

// Response type alias for paginated jobs
type PaginatedJobsResponse = kernel.Paginated[Job]

// SweepResponse - result of an expiry sweep
type SweepResponse struct {
	Expired int64     `json:"expired"`
	RanAt   time.Time `json:"ran_at"`
}
