package task

import (
	"context"
	"time"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
	domerrors "github.com/niloofarsh/taskhub/internal/domain/errors"
)

// UpdateInput carries partial changes; nil fields are left untouched.
// Unassign clears the assignee and wins over AssignedTo.
type UpdateInput struct {
	TaskID      domain.TaskID
	CallerID    domain.UserID
	CallerRole  domain.Role
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
	AssignedTo  *domain.UserID
	Unassign    bool
}

type Update struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	events   ports.EventEnqueuer
}

func NewUpdate(tasks ports.TaskRepository, projects ports.ProjectRepository, users ports.UserRepository, events ports.EventEnqueuer) *Update {
	return &Update{tasks: tasks, projects: projects, users: users, events: events}
}

func (uc *Update) Execute(ctx context.Context, input UpdateInput) (*domain.Task, error) {
	t, err := loadAccessible(ctx, uc.tasks, uc.projects, input.TaskID, input.CallerID, input.CallerRole)
	if err != nil {
		return nil, err
	}
	assigneeChanged := false
	if input.Unassign {
		if t.AssignedTo != nil {
			t.AssignedTo = nil
		}
	} else if input.AssignedTo != nil {
		assignee, err := uc.users.GetByID(ctx, *input.AssignedTo)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, domerrors.ErrAssigneeNotFound
		}
		if t.AssignedTo == nil || *t.AssignedTo != *input.AssignedTo {
			assigneeChanged = true
		}
		t.AssignedTo = input.AssignedTo
	}
	if input.Title != nil {
		t.Title = *input.Title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Status != nil {
		t.Status = *input.Status
	}
	if input.Priority != nil {
		t.Priority = *input.Priority
	}
	if input.DueDate != nil {
		t.DueDate = input.DueDate
	}
	t.UpdatedAt = time.Now()
	if err := uc.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	if assigneeChanged {
		_ = uc.events.EnqueueTaskAssigned(ctx, t, *t.AssignedTo)
	}
	return t, nil
}
