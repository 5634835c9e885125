// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel string
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	S3       S3Config
	JWT      JWTConfig
	NATS     NATSConfig
	Sweeper  SweeperConfig
	Upload   UploadConfig
}

type HTTPConfig struct {
	Port         string
	AllowOrigins string
	BodyLimit    int
}

type PostgresConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN renders the lib/pq connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Name, p.SSLMode)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type S3Config struct {
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

type JWTConfig struct {
	Secret         string
	Issuer         string
	AccessTokenTTL time.Duration
}

type NATSConfig struct {
	URL     string
	Subject string
}

// Enabled reports whether a NATS server was configured
func (n NATSConfig) Enabled() bool {
	return n.URL != ""
}

type SweeperConfig struct {
	Enabled  bool
	Interval time.Duration
	LockTTL  time.Duration
}

type UploadConfig struct {
	ResumeFolder   string
	MaxResumeBytes int64
	MaxResumePages int
	AllowedTypes   []string
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel: getEnvString("LOG_LEVEL", "info"),
		HTTP: HTTPConfig{
			Port:         getEnvString("PORT", "8080"),
			AllowOrigins: getEnvString("CORS_ALLOW_ORIGINS", "*"),
			BodyLimit:    getEnvInt("HTTP_BODY_LIMIT", 12*1024*1024),
		},
		Postgres: PostgresConfig{
			Host:            getEnvString("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnvString("DB_USER", "postgres"),
			Password:        getEnvString("DB_PASS", ""),
			Name:            getEnvString("DB_NAME", "jobboard"),
			SSLMode:         getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnvString("REDIS_ADDR", "localhost:6379"),
			Password: getEnvString("REDIS_PASS", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		S3: S3Config{
			Region:        getEnvString("AWS_REGION", "us-east-1"),
			Bucket:        getEnvString("AWS_BUCKET", ""),
			Prefix:        getEnvString("S3_PREFIX", "uploads"),
			PublicBaseURL: getEnvString("S3_PUBLIC_BASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret:         getEnvString("JWT_SECRET", ""),
			Issuer:         getEnvString("JWT_ISSUER", "jobboard"),
			AccessTokenTTL: getEnvDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		},
		NATS: NATSConfig{
			URL:     getEnvString("NATS_URL", ""),
			Subject: getEnvString("NATS_NOTIFICATION_SUBJECT", "notifications.created"),
		},
		Sweeper: SweeperConfig{
			Enabled:  getEnvBool("SWEEP_ENABLED", true),
			Interval: getEnvDuration("SWEEP_INTERVAL", time.Hour),
			LockTTL:  getEnvDuration("SWEEP_LOCK_TTL", 5*time.Minute),
		},
		Upload: UploadConfig{
			ResumeFolder:   getEnvString("RESUME_FOLDER", "resumes"),
			MaxResumeBytes: int64(getEnvInt("MAX_RESUME_BYTES", 5*1024*1024)),
			MaxResumePages: getEnvInt("MAX_RESUME_PAGES", 20),
			AllowedTypes: getEnvList("RESUME_CONTENT_TYPES", []string{
				"application/pdf",
				"application/msword",
				"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have no usable default
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if c.Sweeper.Enabled && c.Sweeper.Interval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive")
	}
	if c.Upload.MaxResumeBytes <= 0 {
		return fmt.Errorf("MAX_RESUME_BYTES must be positive")
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
