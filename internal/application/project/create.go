package project

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
)

type CreateInput struct {
	Name        string
	Description string
	Status      domain.ProjectStatus
	StartDate   time.Time
	EndDate     *time.Time
	CreatedBy   domain.UserID
}

type CreateResult struct {
	Project *domain.Project
}

// Create persists a new project owned by its creator.
type Create struct {
	projects ports.ProjectRepository
}

func NewCreate(projects ports.ProjectRepository) *Create {
	return &Create{projects: projects}
}

func (uc *Create) Execute(ctx context.Context, input CreateInput) (*CreateResult, error) {
	now := time.Now()
	status := input.Status
	if status == "" {
		status = domain.ProjectActive
	}
	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = now
	}
	p := &domain.Project{
		ID:          domain.NewProjectID(uuid.New()),
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		StartDate:   startDate,
		EndDate:     input.EndDate,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return &CreateResult{Project: p}, nil
}
