package project

import (
	"context"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
)

type DeleteResult struct {
	TasksRemoved int64
}

// Delete removes a project and, first, every task under it. The cascade is
// an explicit step here so no orphan task can reference a deleted project
// even on storage without foreign-key enforcement.
type Delete struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	events   ports.EventEnqueuer
}

func NewDelete(projects ports.ProjectRepository, tasks ports.TaskRepository, events ports.EventEnqueuer) *Delete {
	return &Delete{projects: projects, tasks: tasks, events: events}
}

func (uc *Delete) Execute(ctx context.Context, project *domain.Project) (*DeleteResult, error) {
	removed, err := uc.tasks.DeleteByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.projects.Delete(ctx, project.ID); err != nil {
		return nil, err
	}
	_ = uc.events.EnqueueProjectDeleted(ctx, project.ID, removed)
	return &DeleteResult{TasksRemoved: removed}, nil
}
