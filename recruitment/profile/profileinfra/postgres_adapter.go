package profileinfra

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
	"github.com/Abraxas-365/jobboard/recruitment/profile"
	"github.com/jmoiron/sqlx"
)

// PostgresProfileRepository implements profile.Repository using PostgreSQL
type PostgresProfileRepository struct {
	db *sqlx.DB
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository
func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type profileModel struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Contact     string    `db:"contact"`
	Experience  string    `db:"experience"`
	Education   string    `db:"education"`
	Projects    string    `db:"projects"`
	ResumeURL   string    `db:"resume_url"`
	CoverLetter string    `db:"cover_letter"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (m *profileModel) toEntity() (*profile.ApplicationProfile, error) {
	p := &profile.ApplicationProfile{
		ID:          kernel.ProfileID(m.ID),
		UserID:      kernel.UserID(m.UserID),
		ResumeURL:   kernel.BucketURL(m.ResumeURL),
		CoverLetter: m.CoverLetter,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Education:   []application.Education{},
		Projects:    []application.Project{},
	}

	if err := unmarshalColumn(m.Contact, &p.Contact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contact: %w", err)
	}
	if err := unmarshalColumn(m.Experience, &p.Experience); err != nil {
		return nil, fmt.Errorf("failed to unmarshal experience: %w", err)
	}
	if err := unmarshalColumn(m.Education, &p.Education); err != nil {
		return nil, fmt.Errorf("failed to unmarshal education: %w", err)
	}
	if err := unmarshalColumn(m.Projects, &p.Projects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projects: %w", err)
	}
	return p, nil
}

func fromEntity(p *profile.ApplicationProfile) (*profileModel, error) {
	m := &profileModel{
		ID:          p.ID.String(),
		UserID:      p.UserID.String(),
		ResumeURL:   p.ResumeURL.String(),
		CoverLetter: p.CoverLetter,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	var err error
	if m.Contact, err = marshalColumn(p.Contact); err != nil {
		return nil, fmt.Errorf("failed to marshal contact: %w", err)
	}
	if m.Experience, err = marshalColumn(p.Experience); err != nil {
		return nil, fmt.Errorf("failed to marshal experience: %w", err)
	}
	if m.Education, err = marshalList(p.Education); err != nil {
		return nil, fmt.Errorf("failed to marshal education: %w", err)
	}
	if m.Projects, err = marshalList(p.Projects); err != nil {
		return nil, fmt.Errorf("failed to marshal projects: %w", err)
	}
	return m, nil
}

// JSONB columns travel as text so lib/pq does not encode them as bytea
func unmarshalColumn(data string, v any) error {
	if data == "" || data == "null" {
		return nil
	}
	return json.Unmarshal([]byte(data), v)
}

func marshalColumn(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func marshalList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	return marshalColumn(items)
}

// ============================================================================
// Repository Implementation
// ============================================================================

// GetByUserID retrieves the user's profile
func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID kernel.UserID) (*profile.ApplicationProfile, error) {
	query := `
		SELECT id, user_id, contact, experience, education, projects,
			resume_url, cover_letter, created_at, updated_at
		FROM application_profiles
		WHERE user_id = $1
	`

	var model profileModel
	if err := r.db.GetContext(ctx, &model, query, userID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, profile.ErrProfileNotFound().WithDetail("user_id", userID.String())
		}
		return nil, errx.Wrap(err, "failed to get application profile", errx.TypeInternal)
	}

	return model.toEntity()
}

// Upsert inserts the profile or replaces the stored one for the same user.
// The stored id and created_at are kept and written back onto p.
func (r *PostgresProfileRepository) Upsert(ctx context.Context, p *profile.ApplicationProfile) error {
	model, err := fromEntity(p)
	if err != nil {
		return errx.Wrap(err, "failed to encode application profile", errx.TypeInternal)
	}

	query := `
		INSERT INTO application_profiles (
			id, user_id, contact, experience, education, projects,
			resume_url, cover_letter, created_at, updated_at
		) VALUES (
			:id, :user_id, :contact, :experience, :education, :projects,
			:resume_url, :cover_letter, :created_at, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			contact = EXCLUDED.contact,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			projects = EXCLUDED.projects,
			resume_url = EXCLUDED.resume_url,
			cover_letter = EXCLUDED.cover_letter,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return errx.Wrap(err, "failed to prepare profile upsert", errx.TypeInternal)
	}
	defer stmt.Close()

	var stored struct {
		ID        string    `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err := stmt.GetContext(ctx, &stored, model); err != nil {
		return errx.Wrap(err, "failed to upsert application profile", errx.TypeInternal)
	}

	p.ID = kernel.ProfileID(stored.ID)
	p.CreatedAt = stored.CreatedAt
	return nil
}
