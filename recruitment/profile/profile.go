package profile

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application"
)

// ApplicationProfile is the applicant data reused across applications.
// There is one per user and every apply overwrites it.
type ApplicationProfile struct {
	ID          kernel.ProfileID        `db:"id" json:"id"`
	UserID      kernel.UserID           `db:"user_id" json:"user_id"`
	Contact     application.Contact     `db:"contact" json:"contact"`
	Experience  application.Experience  `db:"experience" json:"experience"`
	Education   []application.Education `db:"education" json:"education"`
	Projects    []application.Project   `db:"projects" json:"projects"`
	ResumeURL   kernel.BucketURL        `db:"resume_url" json:"resume_url"`
	CoverLetter string                  `db:"cover_letter" json:"cover_letter,omitempty"`
	CreatedAt   time.Time               `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time               `db:"updated_at" json:"updated_at"`
}

// HasResume checks if a resume is on file
func (p *ApplicationProfile) HasResume() bool {
	return p != nil && !p.ResumeURL.IsEmpty()
}

// Snapshot copies the profile data onto an application
func (p *ApplicationProfile) Snapshot(app *application.Application) {
	app.Contact = p.Contact
	app.Experience = p.Experience
	app.Education = append(make([]application.Education, 0, len(p.Education)), p.Education...)
	app.Projects = append(make([]application.Project, 0, len(p.Projects)), p.Projects...)
	app.ResumeURL = p.ResumeURL
	app.CoverLetter = p.CoverLetter
}
