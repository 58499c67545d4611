package task

import (
	"context"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
)

type Delete struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
}

func NewDelete(tasks ports.TaskRepository, projects ports.ProjectRepository) *Delete {
	return &Delete{tasks: tasks, projects: projects}
}

func (uc *Delete) Execute(ctx context.Context, taskID domain.TaskID, callerID domain.UserID, callerRole domain.Role) error {
	t, err := loadAccessible(ctx, uc.tasks, uc.projects, taskID, callerID, callerRole)
	if err != nil {
		return err
	}
	return uc.tasks.Delete(ctx, t.ID)
}
