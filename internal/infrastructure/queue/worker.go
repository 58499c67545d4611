package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// taskAssignedPayload matches the JSON enqueued by EnqueueTaskAssigned.
type taskAssignedPayload struct {
	TaskID     string `json:"task_id"`
	Title      string `json:"title"`
	ProjectID  string `json:"project_id"`
	AssignedTo string `json:"assigned_to"`
}

// projectDeletedPayload matches the JSON enqueued by EnqueueProjectDeleted.
type projectDeletedPayload struct {
	ProjectID string `json:"project_id"`
	TaskCount int64  `json:"task_count"`
}

// Worker runs Asynq handlers for notification events.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, log: log}
	mux.HandleFunc(TypeTaskAssigned, w.handleTaskAssigned)
	mux.HandleFunc(TypeProjectDeleted, w.handleProjectDeleted)
	return w
}

func (w *Worker) handleTaskAssigned(ctx context.Context, t *asynq.Task) error {
	var p taskAssignedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("task assigned payload invalid")
		return err
	}
	// Dev: log the event; production would deliver email/webhook.
	w.log.Info().
		Str("task_id", p.TaskID).
		Str("title", p.Title).
		Str("assigned_to", p.AssignedTo).
		Msg("task assigned notification (log only; configure delivery for real notifications)")
	return nil
}

func (w *Worker) handleProjectDeleted(ctx context.Context, t *asynq.Task) error {
	var p projectDeletedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("project deleted payload invalid")
		return err
	}
	w.log.Info().
		Str("project_id", p.ProjectID).
		Int64("task_count", p.TaskCount).
		Msg("project deleted notification")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
