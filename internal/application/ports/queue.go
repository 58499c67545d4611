package ports

import (
	"context"

	"github.com/niloofarsh/taskhub/internal/domain"
)

// EventEnqueuer enqueues async notifications (task assignment, project removal).
// Implementations must not block the request path on delivery.
type EventEnqueuer interface {
	EnqueueTaskAssigned(ctx context.Context, task *domain.Task, assignee domain.UserID) error
	EnqueueProjectDeleted(ctx context.Context, projectID domain.ProjectID, taskCount int64) error
}
