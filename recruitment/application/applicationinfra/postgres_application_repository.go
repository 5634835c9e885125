package applicationinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// jobUserUniqueConstraint backs the one-application-per-job-per-user rule
const jobUserUniqueConstraint = "applications_job_id_user_id_key"

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

// JSONB columns travel as text so lib/pq does not encode them as bytea
type applicationModel struct {
	ID              string     `db:"id"`
	JobID           string     `db:"job_id"`
	UserID          string     `db:"user_id"`
	CompanyID       string     `db:"company_id"`
	Status          string     `db:"status"`
	Contact         string     `db:"contact"`
	Experience      string     `db:"experience"`
	Education       string     `db:"education"`
	Projects        string     `db:"projects"`
	ResumeURL       string     `db:"resume_url"`
	CoverLetter     string     `db:"cover_letter"`
	Metadata        string     `db:"metadata"`
	StatusChangedAt *time.Time `db:"status_changed_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

const applicationColumns = `
	id, job_id, user_id, company_id, status, contact, experience,
	education, projects, resume_url, cover_letter, metadata,
	status_changed_at, created_at, updated_at`

// toEntity converts database model to domain entity
func (m *applicationModel) toEntity() (*application.Application, error) {
	app := &application.Application{
		ID:              kernel.ApplicationID(m.ID),
		JobID:           kernel.JobID(m.JobID),
		UserID:          kernel.UserID(m.UserID),
		CompanyID:       kernel.CompanyID(m.CompanyID),
		Status:          application.ApplicationStatus(m.Status),
		ResumeURL:       kernel.BucketURL(m.ResumeURL),
		CoverLetter:     m.CoverLetter,
		StatusChangedAt: m.StatusChangedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Education:       []application.Education{},
		Projects:        []application.Project{},
	}

	columns := []struct {
		name string
		data string
		dest any
	}{
		{"contact", m.Contact, &app.Contact},
		{"experience", m.Experience, &app.Experience},
		{"education", m.Education, &app.Education},
		{"projects", m.Projects, &app.Projects},
		{"metadata", m.Metadata, &app.Metadata},
	}
	for _, col := range columns {
		if col.data == "" || col.data == "null" {
			continue
		}
		if err := json.Unmarshal([]byte(col.data), col.dest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", col.name, err)
		}
	}

	return app, nil
}

// fromEntity converts domain entity to database model
func fromEntity(app *application.Application) (*applicationModel, error) {
	education := app.Education
	if education == nil {
		education = []application.Education{}
	}
	projects := app.Projects
	if projects == nil {
		projects = []application.Project{}
	}

	encoded := make(map[string]string, 5)
	for name, v := range map[string]any{
		"contact":    app.Contact,
		"experience": app.Experience,
		"education":  education,
		"projects":   projects,
		"metadata":   app.Metadata,
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", name, err)
		}
		encoded[name] = string(b)
	}

	return &applicationModel{
		ID:              app.ID.String(),
		JobID:           app.JobID.String(),
		UserID:          app.UserID.String(),
		CompanyID:       app.CompanyID.String(),
		Status:          string(app.Status),
		Contact:         encoded["contact"],
		Experience:      encoded["experience"],
		Education:       encoded["education"],
		Projects:        encoded["projects"],
		ResumeURL:       app.ResumeURL.String(),
		CoverLetter:     app.CoverLetter,
		Metadata:        encoded["metadata"],
		StatusChangedAt: app.StatusChangedAt,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}, nil
}

func toEntities(models []applicationModel) ([]application.Application, error) {
	entities := make([]application.Application, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}
	return entities, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create inserts a new application. The (job_id, user_id) unique index is the
// real duplicate guard; a racing insert surfaces as ErrAlreadyApplied.
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	model, err := fromEntity(app)
	if err != nil {
		return errx.Wrap(err, "failed to encode application", errx.TypeInternal)
	}

	query := `
		INSERT INTO applications (` + applicationColumns + `
		) VALUES (
			:id, :job_id, :user_id, :company_id, :status, :contact, :experience,
			:education, :projects, :resume_url, :cover_letter, :metadata,
			:status_changed_at, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return mapCreateError(err, app)
	}

	return nil
}

// mapCreateError translates insert failures into application errors
func mapCreateError(err error, app *application.Application) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == jobUserUniqueConstraint || pqErr.Constraint == "" {
				return application.ErrAlreadyApplied().
					WithDetail("job_id", app.JobID.String()).
					WithCause(err)
			}
		case "23503": // foreign_key_violation
			return application.ErrInvalidRequest().WithDetail("constraint", pqErr.Constraint)
		}
	}
	return errx.Wrap(err, "failed to create application", errx.TypeInternal)
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	var model applicationModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get application by id", errx.TypeInternal)
	}

	return model.toEntity()
}

// ExistsByJobAndUser checks if the user already applied to the job
func (r *PostgresApplicationRepository) ExistsByJobAndUser(ctx context.Context, jobID kernel.JobID, userID kernel.UserID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, jobID.String(), userID.String()); err != nil {
		return false, errx.Wrap(err, "failed to check existing application", errx.TypeInternal)
	}
	return exists, nil
}

// UpdateStatus persists the status and, when notes is not nil, overwrites metadata.notes
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id kernel.ApplicationID, status application.ApplicationStatus, notes *string) (*application.Application, error) {
	query := `
		UPDATE applications SET
			status = $2,
			metadata = CASE
				WHEN $3::text IS NULL THEN metadata
				ELSE jsonb_set(COALESCE(metadata, '{}'::jsonb), '{notes}', to_jsonb($3::text))
			END,
			status_changed_at = NOW(),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + applicationColumns

	var model applicationModel
	if err := r.db.GetContext(ctx, &model, query, id.String(), string(status), notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to update application status", errx.TypeInternal)
	}

	return model.toEntity()
}

// Delete permanently removes an application
func (r *PostgresApplicationRepository) Delete(ctx context.Context, id kernel.ApplicationID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete application", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}

	return nil
}

// ListByUserID retrieves the applications submitted by a user
func (r *PostgresApplicationRepository) ListByUserID(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	return r.list(ctx, "user_id = $1", []any{userID.String()}, pagination)
}

// ListByJobID retrieves the applications received by a job, optionally filtered by status
func (r *PostgresApplicationRepository) ListByJobID(ctx context.Context, jobID kernel.JobID, status application.ApplicationStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	if status != "" {
		return r.list(ctx, "job_id = $1 AND status = $2", []any{jobID.String(), string(status)}, pagination)
	}
	return r.list(ctx, "job_id = $1", []any{jobID.String()}, pagination)
}

func (r *PostgresApplicationRepository) list(ctx context.Context, where string, args []any, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	pagination = pagination.Normalize()

	// Count total
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM applications WHERE `+where, args...); err != nil {
		return nil, errx.Wrap(err, "failed to count applications", errx.TypeInternal)
	}

	// Get paginated results
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		applicationColumns, where, len(args)+1, len(args)+2)

	var models []applicationModel
	if err := r.db.SelectContext(ctx, &models, query, append(args, pagination.PageSize, pagination.Offset())...); err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}

	entities, err := toEntities(models)
	if err != nil {
		return nil, errx.Wrap(err, "failed to decode applications", errx.TypeInternal)
	}

	return &kernel.Paginated[application.Application]{
		Items: entities,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(entities) == 0,
	}, nil
}
