package applicationapi

import (
	"io"
	"mime/multipart"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/Abraxas-365/jobboard/recruitment/application/applicationsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Apply submits the caller's application to a job
// POST /jobs/:id/apply
func (h *Handlers) Apply(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return application.ErrInvalidRequest().WithDetail("job_id", "missing or empty")
	}

	req, err := parseApplyRequest(c)
	if err != nil {
		return err
	}

	app, err := h.service.Apply(c.Context(), jobID, authContext, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Application submitted successfully",
		"application": app,
	})
}

// GetApplicationProfile returns the caller's reusable profile or null
// GET /jobs/:id/application-profile
func (h *Handlers) GetApplicationProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	p, err := h.service.GetApplicationProfile(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"profile": p,
	})
}

// ListJobApplications lists the applications received by a job
// GET /jobs/:id/applications?status=interview
func (h *Handlers) ListJobApplications(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	applications, err := h.service.ListJobApplications(c.Context(), application.ListApplicationsRequest{
		JobID:      kernel.JobID(c.Params("id")),
		Status:     application.ApplicationStatus(c.Query("status")),
		Pagination: parsePaginationOptions(c),
	}, authContext)
	if err != nil {
		return err
	}

	return c.JSON(applications)
}

// ListMyApplications lists the caller's applications
// GET /applications/me
func (h *Handlers) ListMyApplications(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	applications, err := h.service.ListMyApplications(c.Context(), authContext.UserID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(applications)
}

// GetApplication retrieves an application by ID
// GET /applications/:id
func (h *Handlers) GetApplication(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	app, err := h.service.GetApplication(c.Context(), applicationID, authContext)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// UpdateApplicationStatus moves an application to a new status
// PUT /applications/:id/status
// PUT /admin/applications/:id/status
func (h *Handlers) UpdateApplicationStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.SetStatus(c.Context(), applicationID, req, authContext)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":     "Application status updated",
		"application": updated,
	})
}

// WithdrawApplication deletes the caller's application
// DELETE /applications/:id
func (h *Handlers) WithdrawApplication(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return application.ErrInsufficientPermissions()
	}

	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.Withdraw(c.Context(), applicationID, authContext.UserID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Application withdrawn successfully",
	})
}

// ============================================================================
// Request parsing
// ============================================================================

// parseApplyRequest reads a multipart form, or a JSON body for clients that
// upload the resume separately and rely on their stored profile
func parseApplyRequest(c *fiber.Ctx) (application.ApplyRequest, error) {
	var req application.ApplyRequest

	contentType := strings.ToLower(string(c.Request().Header.ContentType()))
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		if len(c.Body()) == 0 {
			return req, nil
		}
		if err := c.BodyParser(&req); err != nil {
			return req, application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
		}
		return req, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return req, application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	req.CoverLetter = formValue(form, "coverLetter")
	req.Contact = application.LooseJSON(formValue(form, "contact"))
	req.Experience = application.LooseJSON(formValue(form, "experience"))
	req.Education = application.LooseJSON(formValue(form, "education"))
	req.Projects = application.LooseJSON(formValue(form, "project"))

	files := form.File["resume"]
	if len(files) == 0 {
		return req, nil
	}
	file := files[0]

	fileContent, err := file.Open()
	if err != nil {
		return req, application.ErrInvalidRequest().WithDetail("file_open_error", err.Error())
	}
	defer fileContent.Close()

	data, err := io.ReadAll(fileContent)
	if err != nil {
		return req, application.ErrInvalidRequest().WithDetail("file_read_error", err.Error())
	}

	req.Resume = &application.ResumeFile{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}
	return req, nil
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	// Job browsing under /jobs is public, so authenticate per route here
	jobs := app.Group("/jobs")
	jobs.Post("/:id/apply", authMiddleware.Authenticate(), handlers.Apply)
	jobs.Get("/:id/application-profile", authMiddleware.Authenticate(), handlers.GetApplicationProfile)
	jobs.Get("/:id/applications",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.ManagerRoles()...),
		handlers.ListJobApplications,
	)

	api := app.Group("/applications", authMiddleware.Authenticate())
	api.Get("/me", handlers.ListMyApplications)
	api.Get("/:id", handlers.GetApplication)
	api.Put("/:id/status",
		authMiddleware.RequireRole(auth.EmployerRoles()...),
		handlers.UpdateApplicationStatus,
	)
	api.Delete("/:id", handlers.WithdrawApplication)

	admin := app.Group("/admin/applications", authMiddleware.Authenticate())
	admin.Put("/:id/status",
		authMiddleware.RequireRole(auth.RoleAdmin),
		handlers.UpdateApplicationStatus,
	)
}
