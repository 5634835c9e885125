package application

import (
	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// ResumeFile is a resume uploaded with an apply request
type ResumeFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the file size in bytes
func (f *ResumeFile) Size() int64 {
	return int64(len(f.Data))
}

// ApplyRequest - DTO for applying to a job. The loose fields accept either a
// JSON value or a string holding JSON.
type ApplyRequest struct {
	CoverLetter string      `json:"coverLetter" form:"coverLetter"`
	Contact     LooseJSON   `json:"contact"`
	Experience  LooseJSON   `json:"experience"`
	Education   LooseJSON   `json:"education"`
	Projects    LooseJSON   `json:"project"`
	Resume      *ResumeFile `json:"-"`
}

// UpdateStatusRequest - DTO for moving an application to a new status
type UpdateStatusRequest struct {
	Status ApplicationStatus `json:"status"`
	Notes  *string           `json:"notes,omitempty"`
}

// ListApplicationsRequest - DTO for listing applications of a job
type ListApplicationsRequest struct {
	JobID      kernel.JobID
	Status     ApplicationStatus
	Pagination kernel.PaginationOptions
}

// Response type alias for paginated applications
type PaginatedApplicationsResponse = kernel.Paginated[Application]
