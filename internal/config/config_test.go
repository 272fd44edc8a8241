package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"livestock-invest-go/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "development")
	t.Setenv("STORAGE", "")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Storage != StorageMemory {
		t.Fatalf("expected memory storage, got %q", cfg.Storage)
	}
	if !cfg.SeedDemoData {
		t.Fatalf("expected demo data seeded in development")
	}
	if cfg.Risk.Timeout != 8*time.Second {
		t.Fatalf("expected default risk timeout, got %s", cfg.Risk.Timeout)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	contents := "HTTP_PORT=9090\nRISK_MODEL=from-file\nCORS_ORIGINS=http://a.test, http://b.test\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(contents), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("ENV", "development")
	t.Setenv("RISK_MODEL", "from-env")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("CORS_ORIGINS", "")
	os.Unsetenv("HTTP_PORT")
	os.Unsetenv("CORS_ORIGINS")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected port from .env, got %q", cfg.HTTPPort)
	}
	if cfg.Risk.Model != "from-env" {
		t.Fatalf("expected env to win over .env, got %q", cfg.Risk.Model)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
}

func TestValidateRejectsUnknownStorage(t *testing.T) {
	cfg := Config{Env: "development", Storage: "mongo"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown storage")
	}
}

func TestValidateRequiresSecretOutsideDevelopment(t *testing.T) {
	cfg := Config{Env: "production", Storage: StorageMemory}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing token secret")
	}
	cfg.Auth.TokenSecret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
