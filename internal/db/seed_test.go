package db

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/vamsi1219/task-flow-manager-duo/internal/config"
	"github.com/vamsi1219/task-flow-manager-duo/internal/models"
	"github.com/vamsi1219/task-flow-manager-duo/internal/repo"
)

func seedConfig() *config.Config {
	return &config.Config{
		SeedAdminName:     "Admin User",
		SeedAdminEmail:    "admin@example.com",
		SeedAdminPassword: "admin123",
	}
}

func TestEnsureAdminUserBootstraps(t *testing.T) {
	users, _ := repo.NewMemory()
	ctx := context.Background()
	cfg := seedConfig()

	if err := EnsureAdminUser(ctx, users, cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}

	admin, err := users.GetByEmail(ctx, cfg.SeedAdminEmail)
	if err != nil {
		t.Fatalf("seeded admin missing: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("seeded role: %s", admin.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(cfg.SeedAdminPassword)); err != nil {
		t.Errorf("seeded password hash does not verify: %v", err)
	}

	// running again must not create a second admin
	if err := EnsureAdminUser(ctx, users, cfg); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	count, err := users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one admin, got %d", count)
	}
}

func TestEnsureAdminUserSkipsWhenAdminExists(t *testing.T) {
	users, _ := repo.NewMemory()
	ctx := context.Background()

	if _, err := users.Create(ctx, &models.User{
		Name: "Existing", Email: "boss@x.com", PasswordHash: "h", Role: models.RoleAdmin,
	}); err != nil {
		t.Fatalf("seed existing admin: %v", err)
	}

	if err := EnsureAdminUser(ctx, users, seedConfig()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := users.GetByEmail(ctx, "admin@example.com"); err != repo.ErrNotFound {
		t.Errorf("default admin should not be created when one exists, got %v", err)
	}
}
