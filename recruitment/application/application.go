package application

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// ApplicationStatus represents the review state of an application
type ApplicationStatus string

const (
	ApplicationStatusApplied   ApplicationStatus = "applied"   // Initial submission
	ApplicationStatusReviewed  ApplicationStatus = "reviewed"  // Seen by the employer
	ApplicationStatusInterview ApplicationStatus = "interview" // Invited to interview
	ApplicationStatusOffer     ApplicationStatus = "offer"     // Offer extended
	ApplicationStatusHired     ApplicationStatus = "hired"     // Accepted
	ApplicationStatusRejected  ApplicationStatus = "rejected"  // Declined
)

// AllStatuses lists every status a reviewer may set
func AllStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		ApplicationStatusApplied,
		ApplicationStatusReviewed,
		ApplicationStatusInterview,
		ApplicationStatusOffer,
		ApplicationStatusHired,
		ApplicationStatusRejected,
	}
}

// IsValid checks set membership only. Any status may follow any other.
func (s ApplicationStatus) IsValid() bool {
	for _, st := range AllStatuses() {
		if s == st {
			return true
		}
	}
	return false
}

// Notifies reports whether moving to s should notify the applicant
func (s ApplicationStatus) Notifies() bool {
	return s.IsValid() && s != ApplicationStatusApplied
}

// Metadata holds reviewer-owned fields
type Metadata struct {
	Notes string `json:"notes,omitempty"`
}

type Application struct {
	ID              kernel.ApplicationID `db:"id" json:"id"`
	JobID           kernel.JobID         `db:"job_id" json:"job_id"`
	UserID          kernel.UserID        `db:"user_id" json:"user_id"`
	CompanyID       kernel.CompanyID     `db:"company_id" json:"company_id"`
	Status          ApplicationStatus    `db:"status" json:"status"`
	Contact         Contact              `db:"contact" json:"contact"`
	Experience      Experience           `db:"experience" json:"experience"`
	Education       []Education          `db:"education" json:"education"`
	Projects        []Project            `db:"projects" json:"projects"`
	ResumeURL       kernel.BucketURL     `db:"resume_url" json:"resume_url"`
	CoverLetter     string               `db:"cover_letter" json:"cover_letter,omitempty"`
	Metadata        Metadata             `db:"metadata" json:"metadata"`
	StatusChangedAt *time.Time           `db:"status_changed_at" json:"status_changed_at,omitempty"`
	CreatedAt       time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time            `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsOwnedBy checks if the application was submitted by the user
func (a *Application) IsOwnedBy(userID kernel.UserID) bool {
	return a.UserID == userID
}

