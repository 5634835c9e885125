package jobinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID              string    `db:"id"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	Location        string    `db:"location"`
	Salary          string    `db:"salary"`
	EmploymentType  string    `db:"employment_type"`
	CompanyID       string    `db:"company_id"`
	PostedBy        string    `db:"posted_by"`
	Status          string    `db:"status"`
	ExpiresAt       time.Time `db:"expires_at"`
	IsExpired       bool      `db:"is_expired"`
	ApplicantsCount int       `db:"applicants_count"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const jobColumns = `
	id, title, description, location, salary, employment_type,
	company_id, posted_by, status, expires_at, is_expired,
	applicants_count, created_at, updated_at`

func (m *jobModel) toEntity() *job.Job {
	return &job.Job{
		ID:              kernel.JobID(m.ID),
		Title:           kernel.JobTitle(m.Title),
		Description:     kernel.JobDescription(m.Description),
		Location:        m.Location,
		Salary:          m.Salary,
		EmploymentType:  job.EmploymentType(m.EmploymentType),
		CompanyID:       kernel.CompanyID(m.CompanyID),
		PostedBy:        kernel.UserID(m.PostedBy),
		Status:          job.JobStatus(m.Status),
		ExpiresAt:       m.ExpiresAt,
		IsExpired:       m.IsExpired,
		ApplicantsCount: m.ApplicantsCount,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromEntity(j *job.Job) *jobModel {
	return &jobModel{
		ID:              j.ID.String(),
		Title:           string(j.Title),
		Description:     string(j.Description),
		Location:        j.Location,
		Salary:          j.Salary,
		EmploymentType:  string(j.EmploymentType),
		CompanyID:       j.CompanyID.String(),
		PostedBy:        j.PostedBy.String(),
		Status:          string(j.Status),
		ExpiresAt:       j.ExpiresAt,
		IsExpired:       j.IsExpired,
		ApplicantsCount: j.ApplicantsCount,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `
		) VALUES (
			:id, :title, :description, :location, :salary, :employment_type,
			:company_id, :posted_by, :status, :expires_at, :is_expired,
			:applicants_count, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(jobEntity)); err != nil {
		return mapCreateError(err)
	}

	return nil
}

func mapCreateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return job.ErrJobAlreadyExists()
		case "23503": // foreign_key_violation
			return job.ErrInvalidJob().WithDetail("constraint", pqErr.Constraint)
		}
	}
	return errx.Wrap(err, "failed to create job", errx.TypeInternal)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s literally anywhere in the column
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	var model jobModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get job by id", errx.TypeInternal)
	}

	return model.toEntity(), nil
}

// List retrieves jobs matching the filter with pagination
func (r *PostgresJobRepository) List(ctx context.Context, filter job.ListJobsFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	pagination = pagination.Normalize()

	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if !filter.CompanyID.IsEmpty() {
		args = append(args, filter.CompanyID.String())
		conds = append(conds, fmt.Sprintf("company_id = $%d", len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, containsPattern(s))
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR description ILIKE $%d ESCAPE '\' OR location ILIKE $%d ESCAPE '\')`, n, n, n))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	// Count total
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM jobs`+where, args...); err != nil {
		return nil, errx.Wrap(err, "failed to count jobs", errx.TypeInternal)
	}

	// Get paginated results
	query := fmt.Sprintf(`SELECT %s FROM jobs%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		jobColumns, where, len(args)+1, len(args)+2)

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, append(args, pagination.PageSize, pagination.Offset())...); err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}

	entities := make([]job.Job, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return &kernel.Paginated[job.Job]{
		Items: entities,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(entities) == 0,
	}, nil
}

// IncrementApplicants atomically adds one to the applicant counter
func (r *PostgresJobRepository) IncrementApplicants(ctx context.Context, id kernel.JobID) error {
	query := `
		UPDATE jobs
		SET applicants_count = applicants_count + 1, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to increment applicants count", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}

	return nil
}

// ExpireBefore closes every unexpired job whose expiry is before now
func (r *PostgresJobRepository) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE jobs
		SET is_expired = TRUE, status = $2, updated_at = $1
		WHERE expires_at < $1 AND is_expired = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, now, string(job.JobStatusClosed))
	if err != nil {
		return 0, errx.Wrap(err, "failed to expire jobs", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}

	return rows, nil
}

// UpdateStatus sets the status of a job
func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id kernel.JobID, status job.JobStatus) error {
	query := `UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id.String(), string(status))
	if err != nil {
		return errx.Wrap(err, "failed to update job status", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}

	return nil
}
