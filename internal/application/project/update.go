package project

import (
	"context"
	"time"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
)

// UpdateInput carries partial changes; nil fields are left untouched.
// The project itself comes from the authorization gate, already checked
// and loaded.
type UpdateInput struct {
	Project     *domain.Project
	Name        *string
	Description *string
	Status      *domain.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
}

type Update struct {
	projects ports.ProjectRepository
}

func NewUpdate(projects ports.ProjectRepository) *Update {
	return &Update{projects: projects}
}

func (uc *Update) Execute(ctx context.Context, input UpdateInput) (*domain.Project, error) {
	p := input.Project
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
	if input.StartDate != nil {
		p.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		p.EndDate = input.EndDate
	}
	p.UpdatedAt = time.Now()
	if err := uc.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
