package task

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
	domerrors "github.com/niloofarsh/taskhub/internal/domain/errors"
)

// CreateInput carries a new task for a project the authorization gate has
// already loaded and checked.
type CreateInput struct {
	Project     *domain.Project
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
	AssignedTo  *domain.UserID
}

type CreateResult struct {
	Task *domain.Task
}

type Create struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	events ports.EventEnqueuer
}

func NewCreate(tasks ports.TaskRepository, users ports.UserRepository, events ports.EventEnqueuer) *Create {
	return &Create{tasks: tasks, users: users, events: events}
}

func (uc *Create) Execute(ctx context.Context, input CreateInput) (*CreateResult, error) {
	// Assignee existence is checked before anything persists.
	if input.AssignedTo != nil {
		assignee, err := uc.users.GetByID(ctx, *input.AssignedTo)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, domerrors.ErrAssigneeNotFound
		}
	}
	now := time.Now()
	status := input.Status
	if status == "" {
		status = domain.TaskPending
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	t := &domain.Task{
		ID:          domain.NewTaskID(uuid.New()),
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
		ProjectID:   input.Project.ID,
		AssignedTo:  input.AssignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	if t.AssignedTo != nil {
		_ = uc.events.EnqueueTaskAssigned(ctx, t, *t.AssignedTo)
	}
	return &CreateResult{Task: t}, nil
}
