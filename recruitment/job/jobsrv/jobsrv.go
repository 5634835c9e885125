package jobsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/google/uuid"
)

// JobService provides business operations for jobs
type JobService struct {
	jobRepo job.Repository
	now     func() time.Time
}

// NewJobService creates a new instance of the job service
func NewJobService(jobRepo job.Repository) *JobService {
	return &JobService{
		jobRepo: jobRepo,
		now:     time.Now,
	}
}

// CreateJob creates a new job posting owned by the caller's company
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest, principal *auth.AuthContext) (*job.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Resolve the owning company
	var companyID kernel.CompanyID
	switch {
	case principal.IsPlatformAdmin():
		if req.CompanyID == nil || req.CompanyID.IsEmpty() {
			return nil, job.ErrInvalidJob().WithDetail("field", "company_id")
		}
		companyID = *req.CompanyID
	case principal.IsCompanyScoped() && principal.CompanyID != nil && !principal.CompanyID.IsEmpty():
		if req.CompanyID != nil && !req.CompanyID.IsEmpty() && *req.CompanyID != *principal.CompanyID {
			return nil, job.ErrInsufficientPermissions().WithDetail("company_id", req.CompanyID.String())
		}
		companyID = *principal.CompanyID
	default:
		return nil, job.ErrInsufficientPermissions().WithDetail("role", principal.Role)
	}

	now := s.now()
	if req.ExpiresAt != nil && !req.ExpiresAt.IsZero() && !req.ExpiresAt.After(now) {
		return nil, job.ErrInvalidJob().WithDetail("field", "expires_at")
	}

	newJob := job.NewJob(kernel.NewJobID(uuid.NewString()), req, companyID, principal.UserID, now)
	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		return nil, err
	}

	logx.Infof("Job %s created for company %s", newJob.ID, companyID)
	return newJob, nil
}

// GetJob retrieves a job by ID
func (s *JobService) GetJob(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	return s.jobRepo.GetByID(ctx, id)
}

// ListJobs retrieves jobs matching the filter with pagination
func (s *JobService) ListJobs(ctx context.Context, filter job.ListJobsFilter, pagination kernel.PaginationOptions) (*job.PaginatedJobsResponse, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, job.ErrInvalidStatus().WithDetail("status", filter.Status)
	}
	return s.jobRepo.List(ctx, filter, pagination.Normalize())
}

// UpdateJobStatus moderates a posting. Company callers may only touch their own jobs.
func (s *JobService) UpdateJobStatus(ctx context.Context, id kernel.JobID, status job.JobStatus, principal *auth.AuthContext) (*job.Job, error) {
	if !status.IsValid() {
		return nil, job.ErrInvalidStatus().WithDetail("status", status)
	}

	existing, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canModerate(principal, existing) {
		return nil, job.ErrInsufficientPermissions().WithDetail("job_id", id.String())
	}

	if err := s.jobRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	existing.Status = status
	existing.UpdatedAt = s.now()
	return existing, nil
}

// SweepExpiredJobs closes every open posting past its expiry and returns how many changed
func (s *JobService) SweepExpiredJobs(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.jobRepo.ExpireBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		logx.Infof("Expired %d job postings", count)
	}
	return count, nil
}

// canModerate reports whether principal may change the posting's status
func canModerate(principal *auth.AuthContext, j *job.Job) bool {
	if principal.IsPlatformAdmin() {
		return true
	}
	return principal.IsCompanyScoped() && principal.CompanyID != nil && j.BelongsTo(*principal.CompanyID)
}
