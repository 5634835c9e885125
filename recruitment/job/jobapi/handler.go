package jobapi

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateJob creates a new job posting
// POST /jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJob().WithDetail("parse_error", err.Error())
	}

	newJob, err := h.service.CreateJob(c.Context(), req, authContext)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newJob)
}

// GetJob retrieves a job by ID
// GET /jobs/:id
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	j, err := h.service.GetJob(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(j)
}

// ListJobs lists postings, filtered by status, company and free text
// GET /jobs?status=open&company_id=...&q=...
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	filter := job.ListJobsFilter{
		Status:    job.JobStatus(c.Query("status")),
		CompanyID: kernel.CompanyID(c.Query("company_id")),
		Search:    c.Query("q"),
	}

	jobs, err := h.service.ListJobs(c.Context(), filter, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// UpdateJobStatus moderates a job posting
// PUT /jobs/:id/status
func (h *Handlers) UpdateJobStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	var req job.UpdateJobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidStatus().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateJobStatus(c.Context(), kernel.JobID(c.Params("id")), req.Status, authContext)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// SweepExpiredJobs runs the expiry sweep on demand
// POST /admin/jobs/expire
func (h *Handlers) SweepExpiredJobs(c *fiber.Ctx) error {
	now := time.Now()
	count, err := h.service.SweepExpiredJobs(c.Context(), now)
	if err != nil {
		return err
	}

	return c.JSON(job.SweepResponse{
		Expired: count,
		RanAt:   now,
	})
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/jobs")

	// Browsing is public
	api.Get("/", handlers.ListJobs)
	api.Get("/:id", handlers.GetJob)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.ManagerRoles()...),
		handlers.CreateJob,
	)

	api.Put("/:id/status",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.ManagerRoles()...),
		handlers.UpdateJobStatus,
	)

	admin := app.Group("/admin/jobs")
	admin.Post("/expire",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleAdmin),
		handlers.SweepExpiredJobs,
	)
}
