package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
	"github.com/niloofarsh/taskhub/internal/infrastructure/persistence/db"
)

const (
	insertTaskSQL = `INSERT INTO tasks (id, title, description, status, priority, due_date, project_id, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	getTaskByIDSQL = `SELECT id, title, description, status, priority, due_date, project_id, assigned_to, created_at, updated_at
		FROM tasks WHERE id = $1`
	selectTasksSQL = `SELECT id, title, description, status, priority, due_date, project_id, assigned_to, created_at, updated_at
		FROM tasks`
	updateTaskSQL = `UPDATE tasks SET title = $2, description = $3, status = $4, priority = $5, due_date = $6, assigned_to = $7, updated_at = $8
		WHERE id = $1`
	deleteTaskSQL           = `DELETE FROM tasks WHERE id = $1`
	deleteTasksByProjectSQL = `DELETE FROM tasks WHERE project_id = $1`

	// High before medium before low, then newest first.
	taskOrderSQL = ` ORDER BY CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC, created_at DESC`
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	var assignedTo interface{}
	if task.AssignedTo != nil {
		assignedTo = task.AssignedTo.UUID
	}
	_, err := r.pool.Exec(ctx, insertTaskSQL,
		task.ID.UUID, task.Title, task.Description, string(task.Status), string(task.Priority),
		task.DueDate, task.ProjectID.UUID, assignedTo, task.CreatedAt, task.UpdatedAt)
	return err
}

func (r *TaskRepository) GetByID(ctx context.Context, taskID domain.TaskID) (*domain.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, getTaskByIDSQL, taskID.UUID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dbTaskToDomain(t), nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID domain.ProjectID, filter ports.TaskFilter) ([]*domain.Task, error) {
	where := " WHERE project_id = $1"
	args := []interface{}{projectID.UUID}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, string(filter.Status))
	}
	if filter.Priority != "" {
		where += fmt.Sprintf(" AND priority = $%d", len(args)+1)
		args = append(args, string(filter.Priority))
	}
	if filter.AssignedTo != nil {
		where += fmt.Sprintf(" AND assigned_to = $%d", len(args)+1)
		args = append(args, filter.AssignedTo.UUID)
	}
	rows, err := r.pool.Query(ctx, selectTasksSQL+where+taskOrderSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, dbTaskToDomain(t))
	}
	return list, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	var assignedTo interface{}
	if task.AssignedTo != nil {
		assignedTo = task.AssignedTo.UUID
	}
	_, err := r.pool.Exec(ctx, updateTaskSQL,
		task.ID.UUID, task.Title, task.Description, string(task.Status), string(task.Priority),
		task.DueDate, assignedTo, task.UpdatedAt)
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, taskID domain.TaskID) error {
	_, err := r.pool.Exec(ctx, deleteTaskSQL, taskID.UUID)
	return err
}

func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID domain.ProjectID) (int64, error) {
	tag, err := r.pool.Exec(ctx, deleteTasksByProjectSQL, projectID.UUID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanTask(row pgx.Row) (db.Task, error) {
	var t db.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate,
		&t.ProjectID, &t.AssignedTo, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func dbTaskToDomain(t db.Task) *domain.Task {
	task := &domain.Task{
		ID:          domain.NewTaskID(t.ID),
		Title:       t.Title,
		Description: t.Description,
		Status:      domain.TaskStatus(t.Status),
		Priority:    domain.TaskPriority(t.Priority),
		DueDate:     t.DueDate,
		ProjectID:   domain.NewProjectID(t.ProjectID),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedTo != nil {
		assignee := domain.NewUserID(*t.AssignedTo)
		task.AssignedTo = &assignee
	}
	return task
}

// Ensure TaskRepository implements ports.TaskRepository.
var _ ports.TaskRepository = (*TaskRepository)(nil)
