package userinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/user"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const selectUser = `
	SELECT id, name, email, phone, password_hash, role, company_id, created_at, updated_at
	FROM users`

func (r *PostgresUserRepository) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	var u user.User
	if err := r.db.GetContext(ctx, &u, selectUser+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound().WithDetail("user_id", id)
		}
		return nil, errx.Wrap(err, "failed to get user", errx.TypeInternal)
	}
	return &u, nil
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	var u user.User
	if err := r.db.GetContext(ctx, &u, selectUser+` WHERE lower(email) = lower($1)`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound().WithDetail("email", email)
		}
		return nil, errx.Wrap(err, "failed to get user by email", errx.TypeInternal)
	}
	return &u, nil
}
