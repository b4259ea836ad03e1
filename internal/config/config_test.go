package config

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	// envOrDefault treats empty the same as unset, so blanking is enough.
	for _, key := range []string{
		"APP_HOST", "APP_PORT", "APP_ENV", "DATA_DIR",
		"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_PUBLIC_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if !cfg.IsDev() {
		t.Error("default env should be development")
	}
	if cfg.DataDir != "./data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.CacheEnabled() || cfg.ProvisioningEnabled() || cfg.UploadsEnabled() {
		t.Error("optional backends should be off by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("VALKEY_HOST", "cache.internal")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PASSWORD", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if !cfg.CacheEnabled() {
		t.Error("VALKEY_HOST set but cache disabled")
	}
	if !cfg.ProvisioningEnabled() {
		t.Error("POSTGRES_HOST set but provisioning disabled")
	}
	if !strings.Contains(cfg.DSN(), "db.internal:5432") || !strings.Contains(cfg.DSN(), "s3cret") {
		t.Errorf("DSN = %q", cfg.DSN())
	}
}

func TestLoadProductionRequiresDBPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("POSTGRES_HOST", "db.internal")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for default password in production")
	}
}

func TestLoadProductionWithoutPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	// No Postgres host configured: the default password is never used.
	if _, err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestUploadsEnabledNeedsCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("S3_ENDPOINT", "https://fsn1.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UploadsEnabled() {
		t.Error("endpoint without credentials should not enable uploads")
	}

	t.Setenv("S3_ACCESS_KEY", "ak")
	t.Setenv("S3_SECRET_KEY", "sk")
	cfg, _ = Load()
	if !cfg.UploadsEnabled() {
		t.Error("uploads should be enabled with endpoint and credentials")
	}
}
