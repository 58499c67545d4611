package project

import (
	"context"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
)

type ListInput struct {
	CallerID   domain.UserID
	CallerRole domain.Role
	Filter     ports.ProjectFilter
}

// List returns the caller's projects, or every project for admins,
// newest first.
type List struct {
	projects ports.ProjectRepository
}

func NewList(projects ports.ProjectRepository) *List {
	return &List{projects: projects}
}

func (uc *List) Execute(ctx context.Context, input ListInput) ([]*domain.Project, error) {
	if input.CallerRole == domain.RoleAdmin {
		return uc.projects.ListAll(ctx, input.Filter)
	}
	return uc.projects.ListByOwner(ctx, input.CallerID, input.Filter)
}
