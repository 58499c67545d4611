package queue

import (
	"context"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
)

// NoopEnqueuer is a no-op enqueuer when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueTaskAssigned(ctx context.Context, task *domain.Task, assignee domain.UserID) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueProjectDeleted(ctx context.Context, projectID domain.ProjectID, taskCount int64) error {
	return nil
}

var _ ports.EventEnqueuer = (*NoopEnqueuer)(nil)
