package task

import (
	"context"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
)

type Get struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
}

func NewGet(tasks ports.TaskRepository, projects ports.ProjectRepository) *Get {
	return &Get{tasks: tasks, projects: projects}
}

func (uc *Get) Execute(ctx context.Context, taskID domain.TaskID, callerID domain.UserID, callerRole domain.Role) (*domain.Task, error) {
	return loadAccessible(ctx, uc.tasks, uc.projects, taskID, callerID, callerRole)
}
