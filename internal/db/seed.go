package db

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vamsi1219/task-flow-manager-duo/internal/config"
	"github.com/vamsi1219/task-flow-manager-duo/internal/models"
	"github.com/vamsi1219/task-flow-manager-duo/internal/repo"
)

// EnsureAdminUser creates the default admin account when no admin exists yet,
// so a fresh deployment is usable without manual setup. Safe to run on every
// startup.
func EnsureAdminUser(ctx context.Context, users repo.UserStore, cfg *config.Config) error {
	count, err := users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	_, err = users.Create(ctx, &models.User{
		Name:         cfg.SeedAdminName,
		Email:        cfg.SeedAdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
	if err != nil {
		// another instance seeded between the count and the insert
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("insert seed admin: %w", err)
	}
	return nil
}
