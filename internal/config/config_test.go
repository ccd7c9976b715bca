package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"ENV", "HTTP_ADDR", "DATABASE_URL", "STORE_DRIVER", "JWT_SECRET",
		"JWT_EXPIRES_IN", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_PER_MIN",
		"REQUEST_TIMEOUT", "SEED_ADMIN_NAME", "SEED_ADMIN_EMAIL", "SEED_ADMIN_PASSWORD",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "dev" {
		t.Errorf("default env: %s", cfg.Env)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("default token expiry should be 24h, got %s", cfg.JWTExpiry)
	}
	if cfg.StoreDriver != "postgres" {
		t.Errorf("default store driver: %s", cfg.StoreDriver)
	}
	if cfg.PasswordMinLen != 4 {
		t.Errorf("dev password minimum: %d", cfg.PasswordMinLen)
	}
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		t.Error("seed admin defaults missing")
	}
}

func TestLoadOverridesAndProdHardening(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "prod")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.JWTExpiry != 2*time.Hour {
		t.Errorf("expiry override: %s", cfg.JWTExpiry)
	}
	if cfg.StoreDriver != "memory" {
		t.Errorf("driver override: %s", cfg.StoreDriver)
	}
	if cfg.PasswordMinLen != 8 {
		t.Errorf("prod password minimum: %d", cfg.PasswordMinLen)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("origin parsing: %v", cfg.AllowedOrigins)
	}
}

func TestLoadRejectsUnknownStoreDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown store driver")
	}
}
