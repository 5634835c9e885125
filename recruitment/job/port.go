package job

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	// Create creates a new job
	Create(ctx context.Context, job *Job) error

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// List retrieves jobs matching the filter with pagination
	List(ctx context.Context, filter ListJobsFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// IncrementApplicants atomically adds one to the applicant counter
	IncrementApplicants(ctx context.Context, id kernel.JobID) error

	// ExpireBefore closes every unexpired job whose expiry is before now and returns how many changed
	ExpireBefore(ctx context.Context, now time.Time) (int64, error)

	// UpdateStatus sets the status of a job
	UpdateStatus(ctx context.Context, id kernel.JobID, status JobStatus) error
}
