package notificationsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/notification"
	"github.com/google/uuid"
)

// NotificationService stores notifications and fans them out
type NotificationService struct {
	repo      notification.Repository
	publisher notification.Publisher
	now       func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo notification.Repository, publisher notification.Publisher) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Notify persists a notification for the user and then publishes it.
// A publish failure is logged; the stored notification is still returned.
func (s *NotificationService) Notify(ctx context.Context, userID kernel.UserID, jobID kernel.JobID, companyID kernel.CompanyID, message string) (*notification.Notification, error) {
	n := notification.NewNotification(
		kernel.NewNotificationID(uuid.NewString()),
		userID,
		jobID,
		companyID,
		message,
		s.now(),
	)

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, n); err != nil {
			logx.Warnf("Failed to publish notification %s: %v", n.ID, err)
		}
	}

	return n, nil
}

// ListMine lists the caller's notifications
func (s *NotificationService) ListMine(ctx context.Context, userID kernel.UserID, unreadOnly bool, pagination kernel.PaginationOptions) (*kernel.Paginated[notification.Notification], error) {
	return s.repo.ListByUserID(ctx, userID, unreadOnly, pagination.Normalize())
}

// MarkRead flags one of the caller's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id kernel.NotificationID, userID kernel.UserID) (*notification.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !n.IsOwnedBy(userID) {
		return nil, notification.ErrNotOwner().WithDetail("notification_id", id.String())
	}

	if n.IsRead {
		return n, nil
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, err
	}

	n.IsRead = true
	return n, nil
}
