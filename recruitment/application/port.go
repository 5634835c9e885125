package application

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	// Create inserts a new application. A second application for the same
	// job and user fails with ErrAlreadyApplied.
	Create(ctx context.Context, app *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// ExistsByJobAndUser checks if the user already applied to the job
	ExistsByJobAndUser(ctx context.Context, jobID kernel.JobID, userID kernel.UserID) (bool, error)

	// UpdateStatus persists the status and, when notes is not nil, overwrites metadata.notes
	UpdateStatus(ctx context.Context, id kernel.ApplicationID, status ApplicationStatus, notes *string) (*Application, error)

	// Delete permanently removes an application
	Delete(ctx context.Context, id kernel.ApplicationID) error

	// ListByUserID retrieves the applications submitted by a user
	ListByUserID(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Application], error)

	// ListByJobID retrieves the applications received by a job
	ListByJobID(ctx context.Context, jobID kernel.JobID, status ApplicationStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[Application], error)
}
