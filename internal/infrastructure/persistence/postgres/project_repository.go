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
	insertProjectSQL = `INSERT INTO projects (id, name, description, status, start_date, end_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	getProjectByIDSQL = `SELECT id, name, description, status, start_date, end_date, created_by, created_at, updated_at
		FROM projects WHERE id = $1`
	selectProjectsSQL = `SELECT id, name, description, status, start_date, end_date, created_by, created_at, updated_at
		FROM projects`
	updateProjectSQL = `UPDATE projects SET name = $2, description = $3, status = $4, start_date = $5, end_date = $6, updated_at = $7
		WHERE id = $1`
	deleteProjectSQL = `DELETE FROM projects WHERE id = $1`
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	_, err := r.pool.Exec(ctx, insertProjectSQL,
		project.ID.UUID, project.Name, project.Description, string(project.Status),
		project.StartDate, project.EndDate, project.CreatedBy.UUID,
		project.CreatedAt, project.UpdatedAt)
	return err
}

func (r *ProjectRepository) GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error) {
	p, err := scanProject(r.pool.QueryRow(ctx, getProjectByIDSQL, projectID.UUID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dbProjectToDomain(p), nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID domain.UserID, filter ports.ProjectFilter) ([]*domain.Project, error) {
	where := " WHERE created_by = $1"
	args := []interface{}{ownerID.UUID}
	return r.list(ctx, where, args, filter)
}

func (r *ProjectRepository) ListAll(ctx context.Context, filter ports.ProjectFilter) ([]*domain.Project, error) {
	return r.list(ctx, " WHERE TRUE", nil, filter)
}

func (r *ProjectRepository) list(ctx context.Context, where string, args []interface{}, filter ports.ProjectFilter) ([]*domain.Project, error) {
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, string(filter.Status))
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args)+1)
		args = append(args, "%"+filter.Search+"%")
	}
	rows, err := r.pool.Query(ctx, selectProjectsSQL+where+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, dbProjectToDomain(p))
	}
	return list, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	_, err := r.pool.Exec(ctx, updateProjectSQL,
		project.ID.UUID, project.Name, project.Description, string(project.Status),
		project.StartDate, project.EndDate, project.UpdatedAt)
	return err
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID domain.ProjectID) error {
	_, err := r.pool.Exec(ctx, deleteProjectSQL, projectID.UUID)
	return err
}

func scanProject(row pgx.Row) (db.Project, error) {
	var p db.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.StartDate, &p.EndDate,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func dbProjectToDomain(p db.Project) *domain.Project {
	return &domain.Project{
		ID:          domain.NewProjectID(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Status:      domain.ProjectStatus(p.Status),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedBy:   domain.NewUserID(p.CreatedBy),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// Ensure ProjectRepository implements ports.ProjectRepository.
var _ ports.ProjectRepository = (*ProjectRepository)(nil)
