package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vamsi1219/task-flow-manager-duo/internal/models"
)

const taskColumns = `
	t.id, t.title, t.description, t.due_date, t.assigned_to, t.assigned_by,
	t.status, t.created_at, t.completed_at,
	au.name, au.email, bu.name, bu.email`

const taskJoins = `
	FROM tasks t
	JOIN users au ON au.id = t.assigned_to
	JOIN users bu ON bu.id = t.assigned_by`

type TaskPG struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewTaskPG(pool *pgxpool.Pool, timeout time.Duration) *TaskPG {
	return &TaskPG{pool: pool, timeout: timeout}
}

func (r *TaskPG) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	task.ID = uuid.NewString()
	task.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO tasks (id, title, description, due_date, assigned_to, assigned_by, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, task.ID, task.Title, task.Description, task.DueDate, task.AssignedTo, task.AssignedBy, task.Status, task.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return r.GetByID(ctx, task.ID)
}

func (r *TaskPG) GetByID(ctx context.Context, id string) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, "SELECT"+taskColumns+taskJoins+" WHERE t.id = $1", id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

func (r *TaskPG) List(ctx context.Context) ([]models.Task, error) {
	return r.list(ctx, "", nil)
}

func (r *TaskPG) ListByAssignee(ctx context.Context, userID string) ([]models.Task, error) {
	return r.list(ctx, " WHERE t.assigned_to = $1", []any{userID})
}

func (r *TaskPG) list(ctx context.Context, where string, args []any) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := "SELECT" + taskColumns + taskJoins + where + " ORDER BY t.created_at, t.id"
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// SetStatus flips the status in a single statement so a concurrent read never
// observes completed without completed_at. COALESCE keeps the original stamp
// on a redundant completed -> completed call.
func (r *TaskPG) SetStatus(ctx context.Context, id string, status models.TaskStatus, now time.Time) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET status = $2,
		    completed_at = CASE WHEN $2::text = 'completed' THEN COALESCE(completed_at, $3) ELSE NULL END
		WHERE id = $1
	`, id, status, now)
	if err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TaskPG) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var task models.Task
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.AssignedTo,
		&task.AssignedBy,
		&task.Status,
		&task.CreatedAt,
		&task.CompletedAt,
		&task.AssignedToName,
		&task.AssignedToEmail,
		&task.AssignedByName,
		&task.AssignedByEmail,
	); err != nil {
		return nil, err
	}
	return &task, nil
}
