package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vamsi1219/task-flow-manager-duo/internal/models"
)

// MemoryUsers and MemoryTasks back the server when STORE_DRIVER=memory and
// carry the package tests. Slices keep insertion order; every read hands out
// copies so callers never alias store state.

type MemoryUsers struct {
	mu    sync.RWMutex
	users []*models.User
}

type MemoryTasks struct {
	mu    sync.RWMutex
	tasks []*models.Task
	users *MemoryUsers
}

func NewMemory() (*MemoryUsers, *MemoryTasks) {
	users := &MemoryUsers{}
	return users, &MemoryTasks{users: users}
}

func (s *MemoryUsers) Create(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, ErrDuplicateEmail
		}
	}

	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()
	s.users = append(s.users, &stored)

	out := stored
	return &out, nil
}

func (s *MemoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user := s.findByID(id)
	if user == nil {
		return nil, ErrNotFound
	}
	out := *user
	return &out, nil
}

func (s *MemoryUsers) List(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, *user)
	}
	return out, nil
}

func (s *MemoryUsers) CountByRole(_ context.Context, role models.Role) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, user := range s.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

// caller holds the lock
func (s *MemoryUsers) findByID(id string) *models.User {
	for _, user := range s.users {
		if user.ID == id {
			return user
		}
	}
	return nil
}

func (s *MemoryTasks) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *task
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()
	s.tasks = append(s.tasks, &stored)

	return s.joined(&stored), nil
}

func (s *MemoryTasks) GetByID(_ context.Context, id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task := s.findByID(id)
	if task == nil {
		return nil, ErrNotFound
	}
	return s.joined(task), nil
}

func (s *MemoryTasks) List(_ context.Context) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, *s.joined(task))
	}
	return out, nil
}

func (s *MemoryTasks) ListByAssignee(_ context.Context, userID string) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Task
	for _, task := range s.tasks {
		if task.AssignedTo == userID {
			out = append(out, *s.joined(task))
		}
	}
	return out, nil
}

func (s *MemoryTasks) SetStatus(_ context.Context, id string, status models.TaskStatus, now time.Time) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findByID(id)
	if task == nil {
		return nil, ErrNotFound
	}

	task.Status = status
	if status == models.StatusCompleted {
		if task.CompletedAt == nil {
			stamp := now
			task.CompletedAt = &stamp
		}
	} else {
		task.CompletedAt = nil
	}
	return s.joined(task), nil
}

func (s *MemoryTasks) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, task := range s.tasks {
		if task.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// caller holds the lock
func (s *MemoryTasks) findByID(id string) *models.Task {
	for _, task := range s.tasks {
		if task.ID == id {
			return task
		}
	}
	return nil
}

// joined copies the task and fills the display fields from the user store.
// Caller holds the task lock; the user lock is always taken second.
func (s *MemoryTasks) joined(task *models.Task) *models.Task {
	out := *task
	if task.CompletedAt != nil {
		stamp := *task.CompletedAt
		out.CompletedAt = &stamp
	}

	s.users.mu.RLock()
	defer s.users.mu.RUnlock()
	if assignee := s.users.findByID(task.AssignedTo); assignee != nil {
		out.AssignedToName = assignee.Name
		out.AssignedToEmail = assignee.Email
	}
	if assigner := s.users.findByID(task.AssignedBy); assigner != nil {
		out.AssignedByName = assigner.Name
		out.AssignedByEmail = assigner.Email
	}
	return &out
}
