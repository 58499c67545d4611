// Package memory holds mutex-guarded map implementations of the repository
// ports. They back unit tests and keep the same filtering and ordering
// semantics as the postgres repositories.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[domain.UserID]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[domain.UserID]domain.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	copied := u
	return &copied, nil
}

func (r *UserRepository) Deactivate(ctx context.Context, userID domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.Active = false
		r.users[userID] = u
	}
	return nil
}

type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[domain.ProjectID]domain.Project
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{projects: make(map[domain.ProjectID]domain.Project)}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = *project
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[projectID]
	if !ok {
		return nil, nil
	}
	copied := p
	return &copied, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID domain.UserID, filter ports.ProjectFilter) ([]*domain.Project, error) {
	return r.list(func(p domain.Project) bool { return p.CreatedBy == ownerID }, filter), nil
}

func (r *ProjectRepository) ListAll(ctx context.Context, filter ports.ProjectFilter) ([]*domain.Project, error) {
	return r.list(func(domain.Project) bool { return true }, filter), nil
}

func (r *ProjectRepository) list(match func(domain.Project) bool, filter ports.ProjectFilter) []*domain.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Project
	for _, p := range r.projects {
		if !match(p) {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		copied := p
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = *project
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID domain.ProjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.projects, projectID)
	return nil
}

type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[domain.TaskID]domain.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[domain.TaskID]domain.Task)}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, taskID domain.TaskID) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[taskID]
	if !ok {
		return nil, nil
	}
	copied := t
	return &copied, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID domain.ProjectID, filter ports.TaskFilter) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Task
	for _, t := range r.tasks {
		if t.ProjectID != projectID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.AssignedTo != nil && (t.AssignedTo == nil || *t.AssignedTo != *filter.AssignedTo) {
			continue
		}
		copied := t
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Priority.Rank() != list[j].Priority.Rank() {
			return list[i].Priority.Rank() > list[j].Priority.Rank()
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, taskID domain.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, taskID)
	return nil
}

func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID domain.ProjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, t := range r.tasks {
		if t.ProjectID == projectID {
			delete(r.tasks, id)
			removed++
		}
	}
	return removed, nil
}

var (
	_ ports.UserRepository    = (*UserRepository)(nil)
	_ ports.ProjectRepository = (*ProjectRepository)(nil)
	_ ports.TaskRepository    = (*TaskRepository)(nil)
)
