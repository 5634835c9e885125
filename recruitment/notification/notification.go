package notification

import (
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// Notification is a message for a single user. Rows are never deleted.
type Notification struct {
	ID        kernel.NotificationID `db:"id" json:"id"`
	UserID    kernel.UserID         `db:"user_id" json:"user_id"`
	JobID     kernel.JobID          `db:"job_id" json:"job_id"`
	CompanyID kernel.CompanyID      `db:"company_id" json:"company_id"`
	Message   string                `db:"message" json:"message"`
	IsRead    bool                  `db:"is_read" json:"is_read"`
	CreatedAt time.Time             `db:"created_at" json:"created_at"`
}

// NewNotification creates an unread notification
func NewNotification(id kernel.NotificationID, userID kernel.UserID, jobID kernel.JobID, companyID kernel.CompanyID, message string, now time.Time) *Notification {
	return &Notification{
		ID:        id,
		UserID:    userID,
		JobID:     jobID,
		CompanyID: companyID,
		Message:   message,
		CreatedAt: now,
	}
}

// StatusChangeMessage renders the text sent when an application changes status
func StatusChangeMessage(jobTitle, companyName, status string) string {
	return fmt.Sprintf("Your application for %s at %s has been updated to %q.", jobTitle, companyName, status)
}

// IsOwnedBy checks if the notification targets the user
func (n *Notification) IsOwnedBy(userID kernel.UserID) bool {
	return n.UserID == userID
}
