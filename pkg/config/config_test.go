package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Upload.ResumeFolder != "resumes" {
		t.Errorf("expected resume folder 'resumes', got %q", cfg.Upload.ResumeFolder)
	}
	if cfg.Sweeper.Interval != time.Hour {
		t.Errorf("expected default sweep interval 1h, got %s", cfg.Sweeper.Interval)
	}
	if len(cfg.Upload.AllowedTypes) != 3 {
		t.Errorf("expected 3 allowed resume types, got %d", len(cfg.Upload.AllowedTypes))
	}
	if cfg.NATS.Enabled() {
		t.Error("expected NATS to be disabled without NATS_URL")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("SWEEP_INTERVAL", "90s")
	t.Setenv("SWEEP_ENABLED", "false")
	t.Setenv("RESUME_CONTENT_TYPES", "application/pdf, text/plain ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Postgres.Port != 6543 {
		t.Errorf("expected port 6543, got %d", cfg.Postgres.Port)
	}
	if cfg.Sweeper.Interval != 90*time.Second {
		t.Errorf("expected 90s, got %s", cfg.Sweeper.Interval)
	}
	if cfg.Sweeper.Enabled {
		t.Error("expected sweeper to be disabled")
	}
	if got := cfg.Upload.AllowedTypes; len(got) != 2 || got[1] != "text/plain" {
		t.Errorf("unexpected allowed types: %v", got)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error without JWT_SECRET")
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("X_TEST_INT", "abc")
	t.Setenv("X_TEST_DUR", "soon")

	if got := getEnvInt("X_TEST_INT", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
	if got := getEnvDuration("X_TEST_DUR", time.Minute); got != time.Minute {
		t.Errorf("expected fallback 1m, got %s", got)
	}
}

func TestDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=n sslmode=disable"
	if got := p.DSN(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
