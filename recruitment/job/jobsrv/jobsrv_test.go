package jobsrv

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
)

type memJobRepo struct {
	mu   sync.Mutex
	jobs map[kernel.JobID]*job.Job
}

func newMemJobRepo(jobs ...*job.Job) *memJobRepo {
	r := &memJobRepo{jobs: map[kernel.JobID]*job.Job{}}
	for _, j := range jobs {
		r.jobs[j.ID] = j
	}
	return r
}

func (r *memJobRepo) Create(ctx context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[j.ID]; ok {
		return job.ErrJobAlreadyExists()
	}
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *memJobRepo) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	cp := *j
	return &cp, nil
}

func (r *memJobRepo) List(ctx context.Context, filter job.ListJobsFilter, p kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, j := range r.jobs {
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		if !filter.CompanyID.IsEmpty() && j.CompanyID != filter.CompanyID {
			continue
		}
		items = append(items, *j)
	}
	sort.Slice(items, func(a, b int) bool { return items[a].ID < items[b].ID })
	return &kernel.Paginated[job.Job]{Items: items, Page: kernel.NewPage(p, len(items)), Empty: len(items) == 0}, nil
}

func (r *memJobRepo) IncrementApplicants(ctx context.Context, id kernel.JobID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return job.ErrJobNotFound()
	}
	j.ApplicantsCount++
	return nil
}

func (r *memJobRepo) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, j := range r.jobs {
		if !j.IsExpired && j.ExpiresAt.Before(now) {
			j.IsExpired = true
			j.Status = job.JobStatusClosed
			j.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

func (r *memJobRepo) UpdateStatus(ctx context.Context, id kernel.JobID, status job.JobStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return job.ErrJobNotFound()
	}
	j.Status = status
	return nil
}

func companyPtr(id string) *kernel.CompanyID {
	c := kernel.CompanyID(id)
	return &c
}

var baseTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func openJob(id string, expiresAt time.Time) *job.Job {
	return &job.Job{
		ID:        kernel.JobID(id),
		Title:     "Backend Engineer",
		CompanyID: "company_1",
		Status:    job.JobStatusOpen,
		ExpiresAt: expiresAt,
	}
}

func TestNewJobDefaults(t *testing.T) {
	j := job.NewJob("job_1", job.CreateJobRequest{Title: "Dev"}, "company_1", "user_1", baseTime)

	if j.Status != job.JobStatusOpen {
		t.Errorf("expected status open, got %s", j.Status)
	}
	if want := baseTime.Add(30 * 24 * time.Hour); !j.ExpiresAt.Equal(want) {
		t.Errorf("expected expiry %s, got %s", want, j.ExpiresAt)
	}
	if j.IsExpired || j.ApplicantsCount != 0 {
		t.Error("expected a fresh job to be unexpired with no applicants")
	}
	if !j.IsOpen(baseTime) {
		t.Error("expected a fresh job to be open")
	}
}

func TestSweepExpiresOnlyPastJobs(t *testing.T) {
	past := openJob("job_past", baseTime.Add(-time.Hour))
	future := openJob("job_future", baseTime.Add(time.Hour))
	repo := newMemJobRepo(past, future)
	svc := NewJobService(repo)

	n, err := svc.SweepExpiredJobs(context.Background(), baseTime)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 expired job, got %d", n)
	}

	got, _ := repo.GetByID(context.Background(), "job_past")
	if !got.IsExpired || got.Status != job.JobStatusClosed {
		t.Errorf("expected past job expired and closed, got expired=%v status=%s", got.IsExpired, got.Status)
	}

	got, _ = repo.GetByID(context.Background(), "job_future")
	if got.IsExpired || got.Status != job.JobStatusOpen {
		t.Errorf("expected future job untouched, got expired=%v status=%s", got.IsExpired, got.Status)
	}

	// A second sweep at the same instant changes nothing
	n, err = svc.SweepExpiredJobs(context.Background(), baseTime)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if n != 0 {
		t.Errorf("expected idempotent sweep, got %d", n)
	}
}

func TestCreateJob(t *testing.T) {
	req := job.CreateJobRequest{
		Title:          "Backend Engineer",
		Description:    "Build APIs",
		EmploymentType: job.EmploymentFullTime,
	}

	tests := []struct {
		name      string
		principal *auth.AuthContext
		companyID *kernel.CompanyID
		wantErr   errx.Type
		wantOwner kernel.CompanyID
	}{
		{
			name:      "company admin posts for own company",
			principal: &auth.AuthContext{UserID: "u1", Role: auth.RoleCompanyAdmin, CompanyID: companyPtr("company_1")},
			wantOwner: "company_1",
		},
		{
			name:      "employer cannot post for another company",
			principal: &auth.AuthContext{UserID: "u1", Role: auth.RoleEmployer, CompanyID: companyPtr("company_1")},
			companyID: companyPtr("company_2"),
			wantErr:   errx.TypeAuthorization,
		},
		{
			name:      "candidate cannot post",
			principal: &auth.AuthContext{UserID: "u2", Role: auth.RoleUser},
			wantErr:   errx.TypeAuthorization,
		},
		{
			name:      "admin must name a company",
			principal: &auth.AuthContext{UserID: "a", Role: auth.RoleAdmin},
			wantErr:   errx.TypeValidation,
		},
		{
			name:      "admin posts for any company",
			principal: &auth.AuthContext{UserID: "a", Role: auth.RoleAdmin},
			companyID: companyPtr("company_9"),
			wantOwner: "company_9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewJobService(newMemJobRepo())
			svc.now = func() time.Time { return baseTime }

			r := req
			r.CompanyID = tt.companyID
			got, err := svc.CreateJob(context.Background(), r, tt.principal)
			if tt.wantErr != "" {
				if !errx.IsType(err, tt.wantErr) {
					t.Fatalf("expected %s error, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.CompanyID != tt.wantOwner {
				t.Errorf("expected owner %s, got %s", tt.wantOwner, got.CompanyID)
			}
			if got.PostedBy != tt.principal.UserID {
				t.Errorf("expected poster %s, got %s", tt.principal.UserID, got.PostedBy)
			}
		})
	}
}

func TestCreateJobRejectsBadEmploymentType(t *testing.T) {
	svc := NewJobService(newMemJobRepo())
	_, err := svc.CreateJob(context.Background(), job.CreateJobRequest{
		Title:          "Dev",
		Description:    "Code",
		EmploymentType: "Gig",
	}, &auth.AuthContext{UserID: "u", Role: auth.RoleAdmin, CompanyID: companyPtr("c")})
	if !errx.IsCode(err, job.CodeInvalidJob) {
		t.Fatalf("expected invalid job, got %v", err)
	}
}

func TestUpdateJobStatusOwnership(t *testing.T) {
	repo := newMemJobRepo(openJob("job_1", baseTime.Add(time.Hour)))
	svc := NewJobService(repo)

	foreign := &auth.AuthContext{UserID: "u", Role: auth.RoleCompanyAdmin, CompanyID: companyPtr("company_2")}
	if _, err := svc.UpdateJobStatus(context.Background(), "job_1", job.JobStatusClosed, foreign); !errx.IsType(err, errx.TypeAuthorization) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	applicant := &auth.AuthContext{UserID: "u", Role: auth.RoleUser, CompanyID: companyPtr("company_1")}
	if _, err := svc.UpdateJobStatus(context.Background(), "job_1", job.JobStatusClosed, applicant); !errx.IsType(err, errx.TypeAuthorization) {
		t.Fatalf("expected forbidden for a non-company role, got %v", err)
	}

	owner := &auth.AuthContext{UserID: "e", Role: auth.RoleEmployer, CompanyID: companyPtr("company_1")}
	if got, err := svc.UpdateJobStatus(context.Background(), "job_1", job.JobStatusClosed, owner); err != nil || got.Status != job.JobStatusClosed {
		t.Fatalf("expected owning employer to close the job, got %v %v", got, err)
	}

	admin := &auth.AuthContext{UserID: "a", Role: auth.RoleAdmin}
	got, err := svc.UpdateJobStatus(context.Background(), "job_1", job.JobStatusPending, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != job.JobStatusPending {
		t.Errorf("expected pending, got %s", got.Status)
	}

	if _, err := svc.UpdateJobStatus(context.Background(), "job_1", "archived", admin); !errx.IsType(err, errx.TypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

type fakeLocker struct {
	held     bool
	lockErr  error
	unlocked int
}

func (l *fakeLocker) TryLock(ctx context.Context) (bool, error) {
	if l.lockErr != nil {
		return false, l.lockErr
	}
	return !l.held, nil
}

func (l *fakeLocker) Unlock(ctx context.Context) error {
	l.unlocked++
	return nil
}

func TestSweeperRunOnce(t *testing.T) {
	repo := newMemJobRepo(openJob("job_past", baseTime.Add(-time.Minute)))
	svc := NewJobService(repo)

	busy := &fakeLocker{held: true}
	sw := NewSweeper(svc, busy, time.Minute)
	sw.now = func() time.Time { return baseTime }

	n, ran, err := sw.RunOnce(context.Background())
	if err != nil || ran || n != 0 {
		t.Fatalf("expected skipped sweep, got n=%d ran=%v err=%v", n, ran, err)
	}
	if busy.unlocked != 0 {
		t.Error("did not expect unlock when the lock was not acquired")
	}

	free := &fakeLocker{}
	sw.locker = free
	n, ran, err = sw.RunOnce(context.Background())
	if err != nil || !ran || n != 1 {
		t.Fatalf("expected one expired job, got n=%d ran=%v err=%v", n, ran, err)
	}
	if free.unlocked != 1 {
		t.Errorf("expected lock to be released once, got %d", free.unlocked)
	}

}

func TestSweeperRunsWhenLockerFails(t *testing.T) {
	repo := newMemJobRepo(openJob("job_past", baseTime.Add(-48*time.Hour)))
	broken := &fakeLocker{lockErr: errors.New("redis down")}
	sw := NewSweeper(NewJobService(repo), broken, time.Minute)
	sw.now = func() time.Time { return baseTime }

	n, ran, err := sw.RunOnce(context.Background())
	if err != nil || !ran || n != 1 {
		t.Fatalf("expected unguarded sweep, got n=%d ran=%v err=%v", n, ran, err)
	}
	if broken.unlocked != 0 {
		t.Errorf("did not expect unlock without a held lock, got %d", broken.unlocked)
	}

	j, err := repo.GetByID(context.Background(), "job_past")
	if err != nil {
		t.Fatal(err)
	}
	if !j.IsExpired || j.Status != job.JobStatusClosed {
		t.Errorf("expected job expired and closed, got expired=%v status=%s", j.IsExpired, j.Status)
	}
}

func TestSweeperStopsOnCancel(t *testing.T) {
	svc := NewJobService(newMemJobRepo())
	sw := NewSweeper(svc, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
