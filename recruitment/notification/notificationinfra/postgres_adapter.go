package notificationinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/notification"
	"github.com/jmoiron/sqlx"
)

// PostgresNotificationRepository implements notification.Repository using PostgreSQL
type PostgresNotificationRepository struct {
	db *sqlx.DB
}

func NewPostgresNotificationRepository(db *sqlx.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

const notificationColumns = `id, user_id, job_id, company_id, message, is_read, created_at`

// Create appends a notification
func (r *PostgresNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES (:id, :user_id, :job_id, :company_id, :message, :is_read, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, n); err != nil {
		return errx.Wrap(err, "failed to create notification", errx.TypeInternal)
	}
	return nil
}

// GetByID retrieves a notification by ID
func (r *PostgresNotificationRepository) GetByID(ctx context.Context, id kernel.NotificationID) (*notification.Notification, error) {
	var n notification.Notification
	err := r.db.GetContext(ctx, &n, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notification.ErrNotificationNotFound().WithDetail("notification_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get notification", errx.TypeInternal)
	}
	return &n, nil
}

// ListByUserID retrieves a user's notifications, newest first
func (r *PostgresNotificationRepository) ListByUserID(ctx context.Context, userID kernel.UserID, unreadOnly bool, pagination kernel.PaginationOptions) (*kernel.Paginated[notification.Notification], error) {
	pagination = pagination.Normalize()

	where := `user_id = $1`
	if unreadOnly {
		where += ` AND is_read = FALSE`
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications WHERE `+where, userID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to count notifications", errx.TypeInternal)
	}

	items := []notification.Notification{}
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE ` + where + `
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &items, query, userID.String(), pagination.PageSize, pagination.Offset()); err != nil {
		return nil, errx.Wrap(err, "failed to list notifications", errx.TypeInternal)
	}

	return &kernel.Paginated[notification.Notification]{
		Items: items,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(items) == 0,
	}, nil
}

// MarkRead flags a notification as read
func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id kernel.NotificationID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to mark notification read", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return notification.ErrNotificationNotFound().WithDetail("notification_id", id.String())
	}
	return nil
}
