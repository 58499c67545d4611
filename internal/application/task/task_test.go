package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
	domerrors "github.com/niloofarsh/taskhub/internal/domain/errors"
	"github.com/niloofarsh/taskhub/internal/infrastructure/persistence/memory"
)

// recordingEnqueuer captures assignment events for assertions.
type recordingEnqueuer struct {
	mu       sync.Mutex
	assigned []domain.UserID
}

func (q *recordingEnqueuer) EnqueueTaskAssigned(ctx context.Context, task *domain.Task, assignee domain.UserID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.assigned = append(q.assigned, assignee)
	return nil
}

func (q *recordingEnqueuer) EnqueueProjectDeleted(ctx context.Context, projectID domain.ProjectID, taskCount int64) error {
	return nil
}

var _ ports.EventEnqueuer = (*recordingEnqueuer)(nil)

type fixture struct {
	users    *memory.UserRepository
	projects *memory.ProjectRepository
	tasks    *memory.TaskRepository
	events   *recordingEnqueuer
	owner    domain.UserID
	project  *domain.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    memory.NewUserRepository(),
		projects: memory.NewProjectRepository(),
		tasks:    memory.NewTaskRepository(),
		events:   &recordingEnqueuer{},
		owner:    domain.NewUserID(uuid.New()),
	}
	ctx := context.Background()
	now := time.Now()
	if err := f.users.Create(ctx, &domain.User{
		ID: f.owner, Email: "owner@example.com", Role: domain.RoleUser, Active: true,
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("create owner: %v", err)
	}
	f.project = &domain.Project{
		ID: domain.NewProjectID(uuid.New()), Name: "Alpha", Status: domain.ProjectActive,
		StartDate: now, CreatedBy: f.owner, CreatedAt: now, UpdatedAt: now,
	}
	if err := f.projects.Create(ctx, f.project); err != nil {
		t.Fatalf("create project: %v", err)
	}
	return f
}

func TestCreateDefaults(t *testing.T) {
	f := newFixture(t)
	uc := NewCreate(f.tasks, f.users, f.events)

	res, err := uc.Execute(context.Background(), CreateInput{
		Project: f.project,
		Title:   "Write docs",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Task.Status != domain.TaskPending {
		t.Errorf("Status = %q, want %q", res.Task.Status, domain.TaskPending)
	}
	if res.Task.Priority != domain.PriorityMedium {
		t.Errorf("Priority = %q, want %q", res.Task.Priority, domain.PriorityMedium)
	}
	if len(f.events.assigned) != 0 {
		t.Errorf("no assignment event expected, got %v", f.events.assigned)
	}
}

func TestCreateUnknownAssignee(t *testing.T) {
	f := newFixture(t)
	uc := NewCreate(f.tasks, f.users, f.events)
	ghost := domain.NewUserID(uuid.New())

	_, err := uc.Execute(context.Background(), CreateInput{
		Project:    f.project,
		Title:      "Write docs",
		AssignedTo: &ghost,
	})
	if !errors.Is(err, domerrors.ErrAssigneeNotFound) {
		t.Fatalf("Execute = %v, want ErrAssigneeNotFound", err)
	}
	list, err := f.tasks.ListByProject(context.Background(), f.project.ID, ports.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("nothing should persist on a failed create, got %d tasks", len(list))
	}
}

func TestCreateEnqueuesAssignment(t *testing.T) {
	f := newFixture(t)
	uc := NewCreate(f.tasks, f.users, f.events)

	res, err := uc.Execute(context.Background(), CreateInput{
		Project:    f.project,
		Title:      "Write docs",
		AssignedTo: &f.owner,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Task.AssignedTo == nil || *res.Task.AssignedTo != f.owner {
		t.Errorf("AssignedTo = %v", res.Task.AssignedTo)
	}
	if len(f.events.assigned) != 1 || f.events.assigned[0] != f.owner {
		t.Errorf("assignment events = %v", f.events.assigned)
	}
}

func TestListOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()
	mk := func(title string, priority domain.TaskPriority, age time.Duration) {
		err := f.tasks.Create(ctx, &domain.Task{
			ID: domain.NewTaskID(uuid.New()), Title: title, Status: domain.TaskPending,
			Priority: priority, ProjectID: f.project.ID,
			CreatedAt: now.Add(-age), UpdatedAt: now,
		})
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	mk("old-high", domain.PriorityHigh, 2*time.Hour)
	mk("new-low", domain.PriorityLow, time.Minute)
	mk("new-medium", domain.PriorityMedium, time.Minute)
	mk("new-high", domain.PriorityHigh, time.Minute)

	got, err := NewList(f.tasks).Execute(ctx, f.project.ID, ports.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"new-high", "old-high", "new-medium", "new-low"}
	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := NewCreate(f.tasks, f.users, f.events).Execute(ctx, CreateInput{
		Project: f.project, Title: "Write docs",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	uc := NewGet(f.tasks, f.projects)
	stranger := domain.NewUserID(uuid.New())

	if _, err := uc.Execute(ctx, created.Task.ID, stranger, domain.RoleUser); !errors.Is(err, domerrors.ErrNotProjectOwner) {
		t.Errorf("stranger get = %v, want ErrNotProjectOwner", err)
	}
	if _, err := uc.Execute(ctx, created.Task.ID, stranger, domain.RoleAdmin); err != nil {
		t.Errorf("admin get = %v, want nil", err)
	}
	if _, err := uc.Execute(ctx, created.Task.ID, f.owner, domain.RoleUser); err != nil {
		t.Errorf("owner get = %v, want nil", err)
	}
	if _, err := uc.Execute(ctx, domain.NewTaskID(uuid.New()), f.owner, domain.RoleUser); !errors.Is(err, domerrors.ErrTaskNotFound) {
		t.Errorf("missing task = %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateAssignAndUnassign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := NewCreate(f.tasks, f.users, f.events).Execute(ctx, CreateInput{
		Project: f.project, Title: "Write docs",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	uc := NewUpdate(f.tasks, f.projects, f.users, f.events)

	updated, err := uc.Execute(ctx, UpdateInput{
		TaskID: created.Task.ID, CallerID: f.owner, CallerRole: domain.RoleUser,
		AssignedTo: &f.owner,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if updated.AssignedTo == nil || *updated.AssignedTo != f.owner {
		t.Errorf("AssignedTo = %v", updated.AssignedTo)
	}
	if len(f.events.assigned) != 1 {
		t.Errorf("assignment events = %v", f.events.assigned)
	}

	// Re-assigning to the same user is not a change.
	if _, err := uc.Execute(ctx, UpdateInput{
		TaskID: created.Task.ID, CallerID: f.owner, CallerRole: domain.RoleUser,
		AssignedTo: &f.owner,
	}); err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if len(f.events.assigned) != 1 {
		t.Errorf("reassign to same user should not enqueue, events = %v", f.events.assigned)
	}

	updated, err = uc.Execute(ctx, UpdateInput{
		TaskID: created.Task.ID, CallerID: f.owner, CallerRole: domain.RoleUser,
		Unassign: true,
	})
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if updated.AssignedTo != nil {
		t.Errorf("AssignedTo = %v after unassign", updated.AssignedTo)
	}
}

func TestUpdateUnknownAssignee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := NewCreate(f.tasks, f.users, f.events).Execute(ctx, CreateInput{
		Project: f.project, Title: "Write docs",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	ghost := domain.NewUserID(uuid.New())
	_, err = NewUpdate(f.tasks, f.projects, f.users, f.events).Execute(ctx, UpdateInput{
		TaskID: created.Task.ID, CallerID: f.owner, CallerRole: domain.RoleUser,
		AssignedTo: &ghost,
	})
	if !errors.Is(err, domerrors.ErrAssigneeNotFound) {
		t.Errorf("update = %v, want ErrAssigneeNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := NewCreate(f.tasks, f.users, f.events).Execute(ctx, CreateInput{
		Project: f.project, Title: "Write docs",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	uc := NewDelete(f.tasks, f.projects)
	stranger := domain.NewUserID(uuid.New())
	if err := uc.Execute(ctx, created.Task.ID, stranger, domain.RoleUser); !errors.Is(err, domerrors.ErrNotProjectOwner) {
		t.Errorf("stranger delete = %v, want ErrNotProjectOwner", err)
	}
	if err := uc.Execute(ctx, created.Task.ID, f.owner, domain.RoleUser); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if got, _ := f.tasks.GetByID(ctx, created.Task.ID); got != nil {
		t.Error("task should be gone")
	}
}
