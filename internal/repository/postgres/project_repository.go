package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/perfboard/perfboard/internal/domain"
	"github.com/perfboard/perfboard/internal/pkg/database"
	apperrors "github.com/perfboard/perfboard/internal/pkg/errors"
)

// ProjectRepository handles project data operations in PostgreSQL
type ProjectRepository struct {
	db *database.PostgresDB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *database.PostgresDB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project and assigns its ID
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO projects (project_name, start_date, end_date, status)
			VALUES ($1, $2, $3, $4)
			RETURNING project_id
		`

		return tx.QueryRow(ctx, query,
			project.Name,
			project.StartDate,
			project.EndDate,
			project.Status,
		).Scan(&project.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	query := `
		SELECT project_id, project_name, start_date, end_date, status
		FROM projects
		WHERE project_id = $1
	`

	var project domain.Project
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.StartDate,
		&project.EndDate,
		&project.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("project")
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

// ListAll retrieves all projects ordered by name
func (r *ProjectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	query := `
		SELECT project_id, project_name, start_date, end_date, status
		FROM projects
		ORDER BY project_name
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.StartDate,
			&project.EndDate,
			&project.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// Update updates a project in place. Returns whether a row was
// actually changed; a missing ID is not an error.
func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) (bool, error) {
	query := `
		UPDATE projects
		SET project_name = $2, start_date = $3, end_date = $4, status = $5
		WHERE project_id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		project.ID,
		project.Name,
		project.StartDate,
		project.EndDate,
		project.Status,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update project: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a project unless any assignment still references it.
// The same no-cascade policy applies to both parent entities.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		var assignments int64
		countQuery := `SELECT COUNT(*) FROM employee_projects WHERE project_id = $1`
		if err := tx.QueryRow(ctx, countQuery, id).Scan(&assignments); err != nil {
			return fmt.Errorf("failed to count assignments: %w", err)
		}

		if assignments > 0 {
			return apperrors.Conflict("project has assigned employees").
				WithDetail("assignments", fmt.Sprintf("%d", assignments))
		}

		tag, err := tx.Exec(ctx, `DELETE FROM projects WHERE project_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

// Count returns the total number of projects
func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// CountByStatus returns project counts grouped by status
func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int64, error) {
	query := `
		SELECT status, COUNT(*)
		FROM projects
		GROUP BY status
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count project statuses: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.ProjectStatus]int64)
	for rows.Next() {
		var status domain.ProjectStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}
