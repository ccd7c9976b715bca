package repo

import (
	"context"
	"errors"
	"time"

	"github.com/vamsi1219/task-flow-manager-duo/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserStore persists user records. Users are never deleted.
type UserStore interface {
	// Create assigns the ID and CreatedAt and returns ErrDuplicateEmail on
	// an email collision.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// List returns all users in insertion order.
	List(ctx context.Context) ([]models.User, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
}

// TaskStore persists tasks. Reads return tasks joined with the assignee and
// assigner display fields, in insertion order.
type TaskStore interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	ListByAssignee(ctx context.Context, userID string) ([]models.Task, error)
	// SetStatus updates the status atomically. A transition to completed
	// stamps CompletedAt with now only if it is not already set; a
	// transition to pending clears it.
	SetStatus(ctx context.Context, id string, status models.TaskStatus, now time.Time) (*models.Task, error)
	// Delete reports whether a task was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
