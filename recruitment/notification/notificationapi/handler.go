package notificationapi

import (
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/notification/notificationsrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *notificationsrv.NotificationService
}

func NewHandlers(service *notificationsrv.NotificationService) *Handlers {
	return &Handlers{service: service}
}

// ListMine lists the caller's notifications
// GET /notifications?unread=true
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}

	items, err := h.service.ListMine(c.Context(), authContext.UserID, c.QueryBool("unread", false), pagination)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// MarkRead flags a notification as read
// PUT /notifications/:id/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	n, err := h.service.MarkRead(c.Context(), kernel.NotificationID(c.Params("id")), authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(n)
}

// RegisterRoutes registers the notification routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/notifications", authMiddleware.Authenticate())

	api.Get("/", handlers.ListMine)
	api.Put("/:id/read", handlers.MarkRead)
}
