package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
)

const (
	TypeTaskAssigned   = "notify:task_assigned"
	TypeProjectDeleted = "notify:project_deleted"
)

// EventEnqueuer publishes notification events through Asynq.
type EventEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*EventEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &EventEnqueuer{client: client, log: log}, nil
}

func (q *EventEnqueuer) Close() error {
	return q.client.Close()
}

func (q *EventEnqueuer) EnqueueTaskAssigned(ctx context.Context, task *domain.Task, assignee domain.UserID) error {
	payload, _ := json.Marshal(map[string]string{
		"task_id":     task.ID.String(),
		"title":       task.Title,
		"project_id":  task.ProjectID.String(),
		"assigned_to": assignee.String(),
	})
	t := asynq.NewTask(TypeTaskAssigned, payload)
	_, err := q.client.EnqueueContext(ctx, t)
	if err != nil {
		q.log.Warn().Err(err).Str("task_id", task.ID.String()).Msg("enqueue task assigned failed")
		return err
	}
	return nil
}

func (q *EventEnqueuer) EnqueueProjectDeleted(ctx context.Context, projectID domain.ProjectID, taskCount int64) error {
	payload, _ := json.Marshal(map[string]interface{}{
		"project_id": projectID.String(),
		"task_count": taskCount,
	})
	t := asynq.NewTask(TypeProjectDeleted, payload)
	_, err := q.client.EnqueueContext(ctx, t)
	if err != nil {
		q.log.Warn().Err(err).Str("project_id", projectID.String()).Msg("enqueue project deleted failed")
		return err
	}
	return nil
}

var _ ports.EventEnqueuer = (*EventEnqueuer)(nil)
