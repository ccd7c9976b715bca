package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/vamsi1219/task-flow-manager-duo/internal/models"
	"github.com/vamsi1219/task-flow-manager-duo/internal/repo"
	"github.com/vamsi1219/task-flow-manager-duo/internal/utils"
)

// TaskService enforces the role and ownership rules on every task operation.
// Callers are resolved users; anything identity-related has already happened
// in the auth middleware.
type TaskService struct {
	tasks repo.TaskStore
	users repo.UserStore
}

type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	AssignedTo  string
}

func NewTaskService(tasks repo.TaskStore, users repo.UserStore) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

func (s *TaskService) Create(ctx context.Context, caller *models.User, in CreateTaskInput) (*models.Task, error) {
	if _, err := s.users.GetByID(ctx, in.AssignedTo); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeInvalidReference, "assigned user does not exist", nil)
		}
		return nil, utils.Internal("could not look up assignee")
	}

	task, err := s.tasks.Create(ctx, &models.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		AssignedTo:  in.AssignedTo,
		AssignedBy:  caller.ID,
		Status:      models.StatusPending,
	})
	if err != nil {
		return nil, utils.Internal("could not create task")
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, utils.Internal("could not list tasks")
	}
	return tasks, nil
}

// ListForUser is admin-or-self.
func (s *TaskService) ListForUser(ctx context.Context, caller *models.User, userID string) ([]models.Task, error) {
	if !caller.IsAdmin() && caller.ID != userID {
		return nil, utils.Forbidden("access denied")
	}
	tasks, err := s.tasks.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, utils.Internal("could not list tasks")
	}
	return tasks, nil
}

// SetStatus is admin-or-assignee. A transition to completed stamps
// CompletedAt once; back to pending clears it; repeating completed leaves
// the original stamp alone.
func (s *TaskService) SetStatus(ctx context.Context, caller *models.User, taskID string, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "status must be pending or completed", nil)
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, utils.NotFound("task not found")
		}
		return nil, utils.Internal("could not look up task")
	}

	if !caller.IsAdmin() && caller.ID != task.AssignedTo {
		return nil, utils.Forbidden("access denied")
	}

	updated, err := s.tasks.SetStatus(ctx, taskID, status, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, utils.NotFound("task not found")
		}
		return nil, utils.Internal("could not update task")
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, caller *models.User, taskID string) error {
	if !caller.IsAdmin() {
		return utils.Forbidden("admin access required")
	}

	deleted, err := s.tasks.Delete(ctx, taskID)
	if err != nil {
		return utils.Internal("could not delete task")
	}
	if !deleted {
		return utils.NotFound("task not found")
	}
	return nil
}
