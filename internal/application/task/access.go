package task

import (
	"context"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
	domerrors "github.com/niloofarsh/taskhub/internal/domain/errors"
)

// loadAccessible fetches a task and enforces the owner-or-admin rule against
// its parent project. This is the single authorization contract applied at
// task granularity; the project-level gate applies the identical rule.
func loadAccessible(ctx context.Context, tasks ports.TaskRepository, projects ports.ProjectRepository, taskID domain.TaskID, callerID domain.UserID, callerRole domain.Role) (*domain.Task, error) {
	t, err := tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrTaskNotFound
	}
	p, err := projects.GetByID(ctx, t.ProjectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	if !p.AccessibleBy(callerID, callerRole) {
		return nil, domerrors.ErrNotProjectOwner
	}
	return t, nil
}
