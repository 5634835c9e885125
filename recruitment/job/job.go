package job

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// DefaultLifetime is how long a posting stays open when no expiry is given
const DefaultLifetime = 30 * 24 * time.Hour

// JobStatus represents the status of a job posting
type JobStatus string

const (
	JobStatusOpen    JobStatus = "open"    // Accepting applications
	JobStatusClosed  JobStatus = "closed"  // No longer accepting applications
	JobStatusPending JobStatus = "pending" // Awaiting moderation
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusOpen, JobStatusClosed, JobStatusPending:
		return true
	}
	return false
}

// EmploymentType is the contract type of a posting
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "Full-time"
	EmploymentPartTime   EmploymentType = "Part-time"
	EmploymentContract   EmploymentType = "Contract"
	EmploymentInternship EmploymentType = "Internship"
)

func (t EmploymentType) IsValid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

type Job struct {
	ID              kernel.JobID          `db:"id" json:"id"`
	Title           kernel.JobTitle       `db:"title" json:"title"`
	Description     kernel.JobDescription `db:"description" json:"description"`
	Location        string                `db:"location" json:"location"`
	Salary          string                `db:"salary" json:"salary"`
	EmploymentType  EmploymentType        `db:"employment_type" json:"employment_type"`
	CompanyID       kernel.CompanyID      `db:"company_id" json:"company_id"`
	PostedBy        kernel.UserID         `db:"posted_by" json:"posted_by"`
	Status          JobStatus             `db:"status" json:"status"`
	ExpiresAt       time.Time             `db:"expires_at" json:"expires_at"`
	IsExpired       bool                  `db:"is_expired" json:"is_expired"`
	ApplicantsCount int                   `db:"applicants_count" json:"applicants_count"`
	CreatedAt       time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time             `db:"updated_at" json:"updated_at"`
}

// NewJob builds an open posting, defaulting the expiry to DefaultLifetime after now
func NewJob(id kernel.JobID, req CreateJobRequest, companyID kernel.CompanyID, postedBy kernel.UserID, now time.Time) *Job {
	expiresAt := now.Add(DefaultLifetime)
	if req.ExpiresAt != nil && !req.ExpiresAt.IsZero() {
		expiresAt = *req.ExpiresAt
	}

	return &Job{
		ID:             id,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		Salary:         req.Salary,
		EmploymentType: req.EmploymentType,
		CompanyID:      companyID,
		PostedBy:       postedBy,
		Status:         JobStatusOpen,
		ExpiresAt:      expiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsOpen checks if the job is accepting applications at now
func (j *Job) IsOpen(now time.Time) bool {
	return j.Status == JobStatusOpen && !j.IsExpired && now.Before(j.ExpiresAt)
}

// BelongsTo checks if the job is owned by the company
func (j *Job) BelongsTo(companyID kernel.CompanyID) bool {
	return j.CompanyID == companyID
}
