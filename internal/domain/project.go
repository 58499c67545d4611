package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCanceled  ProjectStatus = "canceled"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectCanceled:
		return true
	}
	return false
}

// ProjectID is a value object for project identity.
type ProjectID struct{ uuid.UUID }

// NewProjectID creates a new ProjectID from uuid.
func NewProjectID(id uuid.UUID) ProjectID { return ProjectID{UUID: id} }

// String returns the canonical string form.
func (p ProjectID) String() string { return p.UUID.String() }

// Project is owned by the user that created it. Deleting a project deletes
// every task under it.
type Project struct {
	ID          ProjectID
	Name        string
	Description string
	Status      ProjectStatus
	StartDate   time.Time
	EndDate     *time.Time
	CreatedBy   UserID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AccessibleBy is the owner-or-admin rule: the creator and any admin may
// read or modify the project and its tasks. Task-scoped checks resolve the
// parent project and apply this same rule.
func (p *Project) AccessibleBy(userID UserID, role Role) bool {
	return p.CreatedBy == userID || role == RoleAdmin
}
