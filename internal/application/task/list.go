package task

import (
	"context"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
)

// List returns a project's tasks, priority descending then newest first.
// Access to the project is the gate's responsibility.
type List struct {
	tasks ports.TaskRepository
}

func NewList(tasks ports.TaskRepository) *List {
	return &List{tasks: tasks}
}

func (uc *List) Execute(ctx context.Context, projectID domain.ProjectID, filter ports.TaskFilter) ([]*domain.Task, error) {
	return uc.tasks.ListByProject(ctx, projectID, filter)
}
