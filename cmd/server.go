package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/jobboard/pkg/config"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/application/applicationapi"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobapi"
	"github.com/Abraxas-365/jobboard/recruitment/notification/notificationapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load configuration and initialize logger
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	defer logx.Sync()
	logx.Info("Starting Job Board API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Close()

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "Job Board API",
		DisableStartupMessage: true,
		BodyLimit:             cfg.HTTP.BodyLimit,
		ErrorHandler:          globalErrorHandler,
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 5. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
			"redis":  container.Redis.Ping(c.Context()).Err() == nil,
		})
	})

	// 6. Register Routes

	// /auth/login, /auth/me
	auth.RegisterRoutes(app, container.AuthHandlers, container.AuthMiddleware)

	// /jobs, /admin/jobs/expire
	jobapi.RegisterRoutes(app, container.JobHandlers, container.AuthMiddleware)

	// /jobs/:id/apply, /applications, /admin/applications
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware)

	// /notifications
	notificationapi.RegisterRoutes(app, container.NotificationHandlers, container.AuthMiddleware)

	// 7. Background job expiry
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Sweeper.Enabled {
		go container.Sweeper.Start(ctx)
	}

	// 8. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.HTTP.Port)
		if err := app.Listen(":" + cfg.HTTP.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logx.Info("Shutting down server...")
	cancel()

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber errors (e.g., 404 route not found, 413 body too large)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	if e, ok := errx.As(err); ok {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Errorf("%s %s failed: %v", c.Method(), c.Path(), err)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
