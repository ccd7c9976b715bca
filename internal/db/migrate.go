package db

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vamsi1219/task-flow-manager-duo/internal/models"
)

// Migrate brings the users and tasks tables up to date from the model tags.
// It opens its own short-lived connection; the pgx pool handles all request
// traffic.
func Migrate(ctx context.Context, databaseURL string) error {
	gormDB, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open migration db: %w", err)
	}
	defer closeGorm(gormDB)

	if err := gormDB.WithContext(ctx).AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		return fmt.Errorf("auto-migrate schema: %w", err)
	}
	return nil
}

func closeGorm(gormDB *gorm.DB) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
