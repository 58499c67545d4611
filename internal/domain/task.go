package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCanceled   TaskStatus = "canceled"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCanceled:
		return true
	}
	return false
}

// TaskPriority orders tasks in listings (high before medium before low).
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank maps priority to a sortable weight, higher first.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// TaskID is a value object for task identity.
type TaskID struct{ uuid.UUID }

// NewTaskID creates a new TaskID from uuid.
func NewTaskID(id uuid.UUID) TaskID { return TaskID{UUID: id} }

// String returns the canonical string form.
func (t TaskID) String() string { return t.UUID.String() }

// Task belongs to exactly one project and is optionally assigned to a user.
type Task struct {
	ID          TaskID
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	ProjectID   ProjectID
	AssignedTo  *UserID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
