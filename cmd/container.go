package main

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/internal/pdf"
	"github.com/Abraxas-365/jobboard/pkg/config"
	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/Abraxas-365/jobboard/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/iam/user/userinfra"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/application/applicationapi"
	"github.com/Abraxas-365/jobboard/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/jobboard/recruitment/application/applicationsrv"
	"github.com/Abraxas-365/jobboard/recruitment/company/companyinfra"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobapi"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobinfra"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobsrv"
	"github.com/Abraxas-365/jobboard/recruitment/notification"
	"github.com/Abraxas-365/jobboard/recruitment/notification/notificationapi"
	"github.com/Abraxas-365/jobboard/recruitment/notification/notificationinfra"
	"github.com/Abraxas-365/jobboard/recruitment/notification/notificationsrv"
	"github.com/Abraxas-365/jobboard/recruitment/profile/profileinfra"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const sweepLockKey = "jobboard:sweep-lock"

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client
	Publisher  notification.Publisher

	// Auth
	TokenService    auth.TokenService
	PasswordService *auth.PasswordService
	AuthMiddleware  *auth.TokenMiddleware

	// Services
	JobService          *jobsrv.JobService
	ApplicationService  *applicationsrv.ApplicationService
	NotificationService *notificationsrv.NotificationService
	Sweeper             *jobsrv.Sweeper

	// API Handlers
	AuthHandlers         *auth.Handlers
	JobHandlers          *jobapi.Handlers
	ApplicationHandlers  *applicationapi.Handlers
	NotificationHandlers *notificationapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	cfg := c.Config

	// 1. Database Connection
	db, err := sqlx.Connect("postgres", cfg.Postgres.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(cfg.S3.Region))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(awsCfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, cfg.S3.Bucket, cfg.S3.Prefix).
		WithPublicBaseURL(cfg.S3.PublicBaseURL)

	// 4. Notification fan-out
	c.Publisher = notificationinfra.NewNoopPublisher()
	if cfg.NATS.Enabled() {
		publisher, err := notificationinfra.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.Subject, 5*time.Second)
		if err != nil {
			logx.Warnf("Failed to connect to NATS, notifications will not be published: %v", err)
		} else {
			c.Publisher = publisher
		}
	}
}

func (c *Container) initServices() {
	cfg := c.Config

	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	companyRepo := companyinfra.NewPostgresCompanyRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	profileRepo := profileinfra.NewPostgresProfileRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)
	notificationRepo := notificationinfra.NewPostgresNotificationRepository(c.DB)

	// --- Auth ---
	c.TokenService = auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)
	c.PasswordService = auth.NewPasswordService(0)
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService)

	// --- Domain Services ---
	c.JobService = jobsrv.NewJobService(jobRepo)
	c.NotificationService = notificationsrv.NewNotificationService(notificationRepo, c.Publisher)

	uploader := applicationsrv.NewResumeUploader(
		c.FileSystem,
		pdf.NewInspector(),
		cfg.Upload,
	)
	c.ApplicationService = applicationsrv.NewApplicationService(
		applicationRepo,
		profileRepo,
		jobRepo,
		userRepo,
		companyRepo,
		c.NotificationService,
		uploader,
	)

	// Expiry sweep, serialized across replicas through Redis
	locker := jobinfra.NewRedisLocker(c.Redis, sweepLockKey, cfg.Sweeper.LockTTL)
	c.Sweeper = jobsrv.NewSweeper(c.JobService, locker, cfg.Sweeper.Interval)

	// --- Handlers ---
	c.AuthHandlers = auth.NewHandlers(userRepo, c.PasswordService, c.TokenService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.NotificationHandlers = notificationapi.NewHandlers(c.NotificationService)
}

// Close releases infrastructure connections
func (c *Container) Close() {
	if c.Publisher != nil {
		c.Publisher.Close()
	}
	if err := c.Redis.Close(); err != nil {
		logx.Warnf("Failed to close Redis: %v", err)
	}
	if err := c.DB.Close(); err != nil {
		logx.Warnf("Failed to close database: %v", err)
	}
}
