package notification

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type Repository interface {
	// Create appends a notification
	Create(ctx context.Context, n *Notification) error

	// GetByID retrieves a notification by ID
	GetByID(ctx context.Context, id kernel.NotificationID) (*Notification, error)

	// ListByUserID retrieves a user's notifications, newest first
	ListByUserID(ctx context.Context, userID kernel.UserID, unreadOnly bool, pagination kernel.PaginationOptions) (*kernel.Paginated[Notification], error)

	// MarkRead flags a notification as read
	MarkRead(ctx context.Context, id kernel.NotificationID) error
}

// Publisher fans notifications out to other processes
type Publisher interface {
	Publish(ctx context.Context, n *Notification) error
	Close()
}
