package ports

import (
	"context"

	"github.com/niloofarsh/taskhub/internal/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
	// Deactivate flips the active flag; rows are never hard-deleted.
	Deactivate(ctx context.Context, userID domain.UserID) error
}

// ProjectFilter narrows project listings. Zero values mean "no filter".
type ProjectFilter struct {
	Status domain.ProjectStatus
	// Search is a case-insensitive substring match on the project name.
	Search string
}

// ProjectRepository defines persistence for projects.
// Listings are ordered newest first.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID domain.UserID, filter ProjectFilter) ([]*domain.Project, error)
	ListAll(ctx context.Context, filter ProjectFilter) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, projectID domain.ProjectID) error
}

// TaskFilter narrows task listings. Zero values mean "no filter".
type TaskFilter struct {
	Status     domain.TaskStatus
	Priority   domain.TaskPriority
	AssignedTo *domain.UserID
}

// TaskRepository defines persistence for tasks.
// Listings are ordered by priority descending, then newest first.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, taskID domain.TaskID) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID domain.ProjectID, filter TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, taskID domain.TaskID) error
	// DeleteByProject removes every task under the project and returns the
	// number removed. Project deletion calls this explicitly rather than
	// relying on storage-level cascade.
	DeleteByProject(ctx context.Context, projectID domain.ProjectID) (int64, error)
}
