package postgres

import (
	"context"
	"fmt"

	"github.com/perfboard/perfboard/internal/domain"
	"github.com/perfboard/perfboard/internal/pkg/database"
	apperrors "github.com/perfboard/perfboard/internal/pkg/errors"
)

// AssignmentRepository handles employee-project assignment data
// operations in PostgreSQL
type AssignmentRepository struct {
	db *database.PostgresDB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *database.PostgresDB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create inserts an assignment if the (employee, project) pair does
// not already exist. The unique constraint is the authoritative guard
// against concurrent duplicate inserts; an existing pair yields false
// rather than an error.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) (bool, error) {
	query := `
		INSERT INTO employee_projects (employee_id, project_id, role, assignment_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, project_id) DO NOTHING
		RETURNING assignment_id
	`

	rows, err := r.db.Pool.Query(ctx, query,
		assignment.EmployeeID,
		assignment.ProjectID,
		assignment.Role,
		assignment.AssignmentDate,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, apperrors.NotFound("employee or project")
		}
		return false, fmt.Errorf("failed to create assignment: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			if isForeignKeyViolation(err) {
				return false, apperrors.NotFound("employee or project")
			}
			return false, fmt.Errorf("failed to create assignment: %w", err)
		}
		// Conflict path: pair already assigned
		return false, nil
	}

	if err := rows.Scan(&assignment.ID); err != nil {
		return false, fmt.Errorf("failed to scan assignment id: %w", err)
	}

	return true, nil
}

// Exists reports whether the (employee, project) pair is assigned
func (r *AssignmentRepository) Exists(ctx context.Context, employeeID, projectID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM employee_projects WHERE employee_id = $1 AND project_id = $2)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, employeeID, projectID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}

	return exists, nil
}

// Delete removes the assignment for a pair. Role changes are modeled
// as delete plus recreate.
func (r *AssignmentRepository) Delete(ctx context.Context, employeeID, projectID int64) (bool, error) {
	query := `DELETE FROM employee_projects WHERE employee_id = $1 AND project_id = $2`

	tag, err := r.db.Pool.Exec(ctx, query, employeeID, projectID)
	if err != nil {
		return false, fmt.Errorf("failed to delete assignment: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListForEmployee retrieves an employee's projects with role and
// assignment date, ordered by project name
func (r *AssignmentRepository) ListForEmployee(ctx context.Context, employeeID int64) ([]domain.EmployeeProject, error) {
	query := `
		SELECT
			p.project_id, p.project_name, p.start_date, p.end_date, p.status,
			ep.role, ep.assignment_date
		FROM projects p
		JOIN employee_projects ep ON p.project_id = ep.project_id
		WHERE ep.employee_id = $1
		ORDER BY p.project_name
	`

	rows, err := r.db.Pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for employee: %w", err)
	}
	defer rows.Close()

	var result []domain.EmployeeProject
	for rows.Next() {
		var ep domain.EmployeeProject
		if err := rows.Scan(
			&ep.Project.ID,
			&ep.Project.Name,
			&ep.Project.StartDate,
			&ep.Project.EndDate,
			&ep.Project.Status,
			&ep.Role,
			&ep.AssignmentDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee project: %w", err)
		}
		result = append(result, ep)
	}

	return result, rows.Err()
}

// ListForProject retrieves a project's employees with role and
// assignment date, ordered by last name, first name
func (r *AssignmentRepository) ListForProject(ctx context.Context, projectID int64) ([]domain.ProjectMember, error) {
	query := `
		SELECT
			e.employee_id, e.first_name, e.last_name, e.email, e.hire_date, e.department,
			ep.role, ep.assignment_date
		FROM employees e
		JOIN employee_projects ep ON e.employee_id = ep.employee_id
		WHERE ep.project_id = $1
		ORDER BY e.last_name, e.first_name
	`

	rows, err := r.db.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees for project: %w", err)
	}
	defer rows.Close()

	var result []domain.ProjectMember
	for rows.Next() {
		var pm domain.ProjectMember
		if err := rows.Scan(
			&pm.Employee.ID,
			&pm.Employee.FirstName,
			&pm.Employee.LastName,
			&pm.Employee.Email,
			&pm.Employee.HireDate,
			&pm.Employee.Department,
			&pm.Role,
			&pm.AssignmentDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project member: %w", err)
		}
		result = append(result, pm)
	}

	return result, rows.Err()
}

// ReportRows retrieves the full employee-project roster ordered by
// employee last name, first name, then project name
func (r *AssignmentRepository) ReportRows(ctx context.Context) ([]domain.AssignmentReportRow, error) {
	query := `
		SELECT
			e.employee_id,
			e.first_name || ' ' || e.last_name AS employee_name,
			e.department,
			p.project_id,
			p.project_name,
			p.status,
			ep.role,
			ep.assignment_date
		FROM employees e
		JOIN employee_projects ep ON e.employee_id = ep.employee_id
		JOIN projects p ON ep.project_id = p.project_id
		ORDER BY e.last_name, e.first_name, p.project_name
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment report: %w", err)
	}
	defer rows.Close()

	var report []domain.AssignmentReportRow
	for rows.Next() {
		var row domain.AssignmentReportRow
		if err := rows.Scan(
			&row.EmployeeID,
			&row.EmployeeName,
			&row.Department,
			&row.ProjectID,
			&row.ProjectName,
			&row.ProjectStatus,
			&row.Role,
			&row.AssignmentDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		report = append(report, row)
	}

	return report, rows.Err()
}

// Count returns the total number of assignments
func (r *AssignmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM employee_projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return count, nil
}
