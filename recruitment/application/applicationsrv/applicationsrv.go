package applicationsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/iam/user"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/Abraxas-365/jobboard/recruitment/company"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/Abraxas-365/jobboard/recruitment/notification"
	"github.com/Abraxas-365/jobboard/recruitment/profile"
	"github.com/google/uuid"
)

// Notifier delivers a message to a user
type Notifier interface {
	Notify(ctx context.Context, userID kernel.UserID, jobID kernel.JobID, companyID kernel.CompanyID, message string) (*notification.Notification, error)
}

// ApplicationService provides business operations for applications
type ApplicationService struct {
	applicationRepo application.Repository
	profileRepo     profile.Repository
	jobRepo         job.Repository
	userRepo        user.Repository
	companyRepo     company.Repository
	notifier        Notifier
	resumes         *ResumeUploader
	now             func() time.Time
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	applicationRepo application.Repository,
	profileRepo profile.Repository,
	jobRepo job.Repository,
	userRepo user.Repository,
	companyRepo company.Repository,
	notifier Notifier,
	resumes *ResumeUploader,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		profileRepo:     profileRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		companyRepo:     companyRepo,
		notifier:        notifier,
		resumes:         resumes,
		now:             time.Now,
	}
}

// ============================================================================
// Apply
// ============================================================================

// Apply submits the caller's application to a job, refreshing their profile
// and bumping the job's applicant counter.
func (s *ApplicationService) Apply(ctx context.Context, jobID kernel.JobID, principal *auth.AuthContext, req application.ApplyRequest) (*application.Application, error) {
	now := s.now()

	// Job must exist and accept applications
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !jobEntity.IsOpen(now) {
		return nil, job.ErrJobNotOpen().
			WithDetail("job_id", jobID.String()).
			WithDetail("status", jobEntity.Status).
			WithDetail("is_expired", jobEntity.IsExpired)
	}

	// Fast path; the unique index on (job_id, user_id) is the real guard
	exists, err := s.applicationRepo.ExistsByJobAndUser(ctx, jobID, principal.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, application.ErrAlreadyApplied().WithDetail("job_id", jobID.String())
	}

	// Normalize loose form fields
	contact, err := application.ParseContact(req.Contact)
	if err != nil {
		return nil, err
	}
	experience, err := application.ParseExperience(req.Experience)
	if err != nil {
		return nil, err
	}
	education, err := application.ParseEducation(req.Education)
	if err != nil {
		logx.Warnf("Ignoring malformed education for user %s: %v", principal.UserID, err)
	}
	projects, err := application.ParseProjects(req.Projects)
	if err != nil {
		logx.Warnf("Ignoring malformed projects for user %s: %v", principal.UserID, err)
	}

	// Missing contact fields fall back to the account
	account, err := s.userRepo.FindByID(ctx, principal.UserID)
	if err != nil && !errx.IsType(err, errx.TypeNotFound) {
		return nil, err
	}
	if account != nil {
		contact = contact.WithFallback(application.Contact{
			Name:  account.Name,
			Email: string(account.Email),
			Phone: string(account.Phone),
		})
	}
	if err := contact.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.loadProfile(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	// Resume: fresh upload, else the one on file
	var (
		resumeURL kernel.BucketURL
		uploaded  *StoredResume
	)
	switch {
	case req.Resume != nil && len(req.Resume.Data) > 0:
		uploaded, err = s.resumes.Upload(ctx, principal.UserID, req.Resume)
		if err != nil {
			return nil, err
		}
		resumeURL = uploaded.URL
	case existing.HasResume():
		resumeURL = existing.ResumeURL
	default:
		return nil, application.ErrResumeMissing()
	}

	// Upsert the rolling profile
	p := &profile.ApplicationProfile{
		ID:          kernel.NewProfileID(uuid.NewString()),
		UserID:      principal.UserID,
		Contact:     contact,
		Experience:  experience,
		Education:   education,
		Projects:    projects,
		ResumeURL:   resumeURL,
		CoverLetter: req.CoverLetter,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if existing != nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}
	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		// The new file is not referenced by any row yet
		s.resumes.Discard(ctx, uploaded)
		return nil, err
	}

	// Insert the application with a frozen copy of the profile
	app := &application.Application{
		ID:        kernel.NewApplicationID(uuid.NewString()),
		JobID:     jobEntity.ID,
		UserID:    principal.UserID,
		CompanyID: jobEntity.CompanyID,
		Status:    application.ApplicationStatusApplied,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Snapshot(app)

	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	if err := s.jobRepo.IncrementApplicants(ctx, jobEntity.ID); err != nil {
		return nil, errx.Wrap(err, "application stored but applicant count not updated", errx.TypeInternal).
			WithDetail("application_id", app.ID.String())
	}

	logx.Infof("User %s applied to job %s (application %s)", principal.UserID, jobEntity.ID, app.ID)
	return app, nil
}

// GetApplicationProfile returns the caller's profile, or nil when none exists
func (s *ApplicationService) GetApplicationProfile(ctx context.Context, userID kernel.UserID) (*profile.ApplicationProfile, error) {
	return s.loadProfile(ctx, userID)
}

func (s *ApplicationService) loadProfile(ctx context.Context, userID kernel.UserID) (*profile.ApplicationProfile, error) {
	p, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// ============================================================================
// Status transitions
// ============================================================================

// SetStatus moves an application to a new status. Company-scoped callers may
// only touch applications to their own company's jobs. Every status except
// applied notifies the applicant; notification failures are logged only.
func (s *ApplicationService) SetStatus(ctx context.Context, id kernel.ApplicationID, req application.UpdateStatusRequest, principal *auth.AuthContext) (*application.Application, error) {
	if !req.Status.IsValid() {
		return nil, application.ErrInvalidStatus().
			WithDetail("status", req.Status).
			WithDetail("allowed", application.AllStatuses())
	}

	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	jobEntity, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}

	if !canManage(principal, jobEntity.CompanyID) {
		return nil, application.ErrInsufficientPermissions().
			WithDetail("application_id", id.String()).
			WithDetail("reason", "job belongs to another company")
	}

	updated, err := s.applicationRepo.UpdateStatus(ctx, id, req.Status, req.Notes)
	if err != nil {
		return nil, err
	}

	if req.Status.Notifies() {
		s.notifyStatusChange(ctx, updated, jobEntity)
	}

	return updated, nil
}

func (s *ApplicationService) notifyStatusChange(ctx context.Context, app *application.Application, jobEntity *job.Job) {
	c, err := s.companyRepo.GetByID(ctx, jobEntity.CompanyID)
	if err != nil {
		logx.Warnf("Notification for application %s skipped, company lookup failed: %v", app.ID, err)
		return
	}

	message := notification.StatusChangeMessage(string(jobEntity.Title), c.Name, string(app.Status))
	if _, err := s.notifier.Notify(ctx, app.UserID, jobEntity.ID, jobEntity.CompanyID, message); err != nil {
		logx.Errorf("Failed to notify user %s about application %s: %v", app.UserID, app.ID, err)
	}
}

// ============================================================================
// Withdraw and queries
// ============================================================================

// Withdraw deletes the caller's own application. The job's applicant counter
// is left as is.
func (s *ApplicationService) Withdraw(ctx context.Context, id kernel.ApplicationID, userID kernel.UserID) error {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !app.IsOwnedBy(userID) {
		return application.ErrInsufficientPermissions().WithDetail("application_id", id.String())
	}

	if err := s.applicationRepo.Delete(ctx, id); err != nil {
		return err
	}

	logx.Infof("User %s withdrew application %s", userID, id)
	return nil
}

// ListMyApplications lists the caller's applications
func (s *ApplicationService) ListMyApplications(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*application.PaginatedApplicationsResponse, error) {
	return s.applicationRepo.ListByUserID(ctx, userID, pagination.Normalize())
}

// ListJobApplications lists the applications a job received
func (s *ApplicationService) ListJobApplications(ctx context.Context, req application.ListApplicationsRequest, principal *auth.AuthContext) (*application.PaginatedApplicationsResponse, error) {
	if req.Status != "" && !req.Status.IsValid() {
		return nil, application.ErrInvalidStatus().WithDetail("status", req.Status)
	}

	jobEntity, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	if !canManage(principal, jobEntity.CompanyID) {
		return nil, application.ErrInsufficientPermissions().WithDetail("job_id", req.JobID.String())
	}

	return s.applicationRepo.ListByJobID(ctx, req.JobID, req.Status, req.Pagination.Normalize())
}

// GetApplication returns an application to its owner, the owning company or an admin
func (s *ApplicationService) GetApplication(ctx context.Context, id kernel.ApplicationID, principal *auth.AuthContext) (*application.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if app.IsOwnedBy(principal.UserID) || canManage(principal, app.CompanyID) {
		return app, nil
	}

	return nil, application.ErrInsufficientPermissions().WithDetail("application_id", id.String())
}

// canManage reports whether the principal administers applications of companyID
func canManage(principal *auth.AuthContext, companyID kernel.CompanyID) bool {
	if principal.IsPlatformAdmin() {
		return true
	}
	return principal.IsCompanyScoped() && principal.BelongsTo(companyID)
}
