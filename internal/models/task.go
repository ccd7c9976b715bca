package models

import "time"

type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Task is an assignment from one user to another. CompletedAt is non-nil
// exactly when Status is completed.
type Task struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"not null"`
	DueDate     time.Time  `json:"due_date" gorm:"not null"`
	AssignedTo  string     `json:"assigned_to" gorm:"type:uuid;not null;index"`
	AssignedBy  string     `json:"assigned_by" gorm:"type:uuid;not null"`
	Status      TaskStatus `json:"status" gorm:"type:text;not null;default:pending"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Display fields joined from the users table; never persisted.
	AssignedToName  string `json:"assigned_to_name,omitempty" gorm:"-"`
	AssignedToEmail string `json:"assigned_to_email,omitempty" gorm:"-"`
	AssignedByName  string `json:"assigned_by_name,omitempty" gorm:"-"`
	AssignedByEmail string `json:"assigned_by_email,omitempty" gorm:"-"`
}
