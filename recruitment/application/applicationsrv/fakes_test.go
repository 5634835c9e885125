package applicationsrv

import (
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/iam/user"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/Abraxas-365/jobboard/recruitment/company"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/Abraxas-365/jobboard/recruitment/notification"
	"github.com/Abraxas-365/jobboard/recruitment/profile"
)

// ============================================================================
// Applications
// ============================================================================

type memApplicationRepo struct {
	mu   sync.Mutex
	apps map[kernel.ApplicationID]*application.Application

	// skipExists makes ExistsByJobAndUser always report false so that
	// the insert is the only duplicate guard
	skipExists bool
}

func newMemApplicationRepo() *memApplicationRepo {
	return &memApplicationRepo{apps: map[kernel.ApplicationID]*application.Application{}}
}

func (r *memApplicationRepo) Create(ctx context.Context, app *application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.JobID == app.JobID && a.UserID == app.UserID {
			return application.ErrAlreadyApplied()
		}
	}
	cp := *app
	r.apps[app.ID] = &cp
	return nil
}

func (r *memApplicationRepo) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, application.ErrApplicationNotFound()
	}
	cp := *a
	return &cp, nil
}

func (r *memApplicationRepo) ExistsByJobAndUser(ctx context.Context, jobID kernel.JobID, userID kernel.UserID) (bool, error) {
	if r.skipExists {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.JobID == jobID && a.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memApplicationRepo) UpdateStatus(ctx context.Context, id kernel.ApplicationID, status application.ApplicationStatus, notes *string) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, application.ErrApplicationNotFound()
	}
	now := time.Now()
	a.Status = status
	if notes != nil {
		a.Metadata.Notes = *notes
	}
	a.StatusChangedAt = &now
	a.UpdatedAt = now
	cp := *a
	return &cp, nil
}

func (r *memApplicationRepo) Delete(ctx context.Context, id kernel.ApplicationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return application.ErrApplicationNotFound()
	}
	delete(r.apps, id)
	return nil
}

func (r *memApplicationRepo) ListByUserID(ctx context.Context, userID kernel.UserID, p kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	return r.list(p, func(a *application.Application) bool { return a.UserID == userID })
}

func (r *memApplicationRepo) ListByJobID(ctx context.Context, jobID kernel.JobID, status application.ApplicationStatus, p kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	return r.list(p, func(a *application.Application) bool {
		return a.JobID == jobID && (status == "" || a.Status == status)
	})
}

func (r *memApplicationRepo) list(p kernel.PaginationOptions, keep func(*application.Application) bool) (*kernel.Paginated[application.Application], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []application.Application{}
	for _, a := range r.apps {
		if keep(a) {
			items = append(items, *a)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return &kernel.Paginated[application.Application]{Items: items, Page: kernel.NewPage(p, len(items)), Empty: len(items) == 0}, nil
}

func (r *memApplicationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

// ============================================================================
// Profiles
// ============================================================================

type memProfileRepo struct {
	mu        sync.Mutex
	profiles  map[kernel.UserID]*profile.ApplicationProfile
	upserts   int
	upsertErr error
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[kernel.UserID]*profile.ApplicationProfile{}}
}

func (r *memProfileRepo) GetByUserID(ctx context.Context, userID kernel.UserID) (*profile.ApplicationProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound()
	}
	cp := *p
	return &cp, nil
}

func (r *memProfileRepo) Upsert(ctx context.Context, p *profile.ApplicationProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if r.upsertErr != nil {
		return r.upsertErr
	}
	if existing, ok := r.profiles[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}
	cp := *p
	r.profiles[p.UserID] = &cp
	return nil
}

// ============================================================================
// Jobs, users and companies
// ============================================================================

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
	r.jobs[j.ID] = j
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
	return nil, errors.New("not used")
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
	return nil
}

func (r *memJobRepo) applicants(id kernel.JobID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.jobs[id].ApplicantsCount
}

type memUserRepo map[kernel.UserID]*user.User

func (r memUserRepo) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	u, ok := r[id]
	if !ok {
		return nil, user.ErrUserNotFound()
	}
	return u, nil
}

func (r memUserRepo) FindByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	for _, u := range r {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound()
}

type memCompanyRepo map[kernel.CompanyID]*company.Company

func (r memCompanyRepo) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	c, ok := r[id]
	if !ok {
		return nil, company.ErrCompanyNotFound()
	}
	return c, nil
}

// ============================================================================
// Side effects
// ============================================================================

type sentNotification struct {
	UserID  kernel.UserID
	JobID   kernel.JobID
	Message string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (n *recordingNotifier) Notify(ctx context.Context, userID kernel.UserID, jobID kernel.JobID, companyID kernel.CompanyID, message string) (*notification.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return nil, n.err
	}
	n.sent = append(n.sent, sentNotification{UserID: userID, JobID: jobID, Message: message})
	return notification.NewNotification("n", userID, jobID, companyID, message, time.Now()), nil
}

type memFileSystem struct {
	mu       sync.Mutex
	files    map[string][]byte
	writeErr error
}

func newMemFileSystem() *memFileSystem {
	return &memFileSystem{files: map[string][]byte{}}
}

func (f *memFileSystem) WriteFile(ctx context.Context, p string, data io.Reader, contentType string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[p] = b
	return nil
}

func (f *memFileSystem) DeleteFile(ctx context.Context, p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, p)
	return nil
}

func (f *memFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

func (f *memFileSystem) URL(p string) string {
	return "https://media.test/" + p
}

func (f *memFileSystem) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for p := range f.files {
		out = append(out, p)
	}
	return out
}

type stubInspector struct {
	pages int
	err   error
}

func (i stubInspector) PageCount(data []byte) (int, error) {
	if i.err != nil {
		return 0, i.err
	}
	if i.pages > 0 {
		return i.pages, nil
	}
	return 1, nil
}
