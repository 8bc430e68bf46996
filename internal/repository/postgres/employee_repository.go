package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/perfboard/perfboard/internal/domain"
	"github.com/perfboard/perfboard/internal/pkg/database"
	apperrors "github.com/perfboard/perfboard/internal/pkg/errors"
)

// pgUniqueViolation is the SQLSTATE code for unique constraint violations
const pgUniqueViolation = "23505"

// pgForeignKeyViolation is the SQLSTATE code for foreign key violations
const pgForeignKeyViolation = "23503"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// EmployeeRepository handles employee data operations in PostgreSQL
type EmployeeRepository struct {
	db *database.PostgresDB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.PostgresDB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create inserts a new employee and assigns its ID. The email must
// already be normalized; the unique constraint on it is the
// authoritative guard and maps to a Conflict error.
func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO employees (first_name, last_name, email, hire_date, department)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING employee_id
		`

		return tx.QueryRow(ctx, query,
			employee.FirstName,
			employee.LastName,
			employee.Email,
			employee.HireDate,
			employee.Department,
		).Scan(&employee.ID)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("email already registered").WithDetail("email", employee.Email)
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query := `
		SELECT employee_id, first_name, last_name, email, hire_date, department
		FROM employees
		WHERE employee_id = $1
	`

	var employee domain.Employee
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&employee.HireDate,
		&employee.Department,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("employee")
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return &employee, nil
}

// GetByEmail retrieves an employee by normalized email
func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `
		SELECT employee_id, first_name, last_name, email, hire_date, department
		FROM employees
		WHERE email = $1
	`

	var employee domain.Employee
	err := r.db.Pool.QueryRow(ctx, query, email).Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&employee.HireDate,
		&employee.Department,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("employee")
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return &employee, nil
}

// ListAll retrieves all employees ordered by last name, first name
func (r *EmployeeRepository) ListAll(ctx context.Context) ([]domain.Employee, error) {
	query := `
		SELECT employee_id, first_name, last_name, email, hire_date, department
		FROM employees
		ORDER BY last_name, first_name
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var employee domain.Employee
		if err := rows.Scan(
			&employee.ID,
			&employee.FirstName,
			&employee.LastName,
			&employee.Email,
			&employee.HireDate,
			&employee.Department,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, employee)
	}

	return employees, rows.Err()
}

// Update updates an employee in place. Returns whether a row was
// actually changed; a missing ID is not an error.
func (r *EmployeeRepository) Update(ctx context.Context, employee *domain.Employee) (bool, error) {
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, hire_date = $5, department = $6
		WHERE employee_id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		employee.ID,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.HireDate,
		employee.Department,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, apperrors.Conflict("email already registered").WithDetail("email", employee.Email)
		}
		return false, fmt.Errorf("failed to update employee: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes an employee unless any assignment still references
// it. The count check and the delete run in one transaction so a
// concurrent assignment cannot slip between them.
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		var assignments int64
		countQuery := `SELECT COUNT(*) FROM employee_projects WHERE employee_id = $1`
		if err := tx.QueryRow(ctx, countQuery, id).Scan(&assignments); err != nil {
			return fmt.Errorf("failed to count assignments: %w", err)
		}

		if assignments > 0 {
			return apperrors.Conflict("employee has project assignments").
				WithDetail("assignments", fmt.Sprintf("%d", assignments))
		}

		tag, err := tx.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

// Count returns the total number of employees
func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// CountByDepartment returns headcount grouped by department
func (r *EmployeeRepository) CountByDepartment(ctx context.Context) (map[string]int64, error) {
	query := `
		SELECT department, COUNT(*)
		FROM employees
		GROUP BY department
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count departments: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var department string
		var count int64
		if err := rows.Scan(&department, &count); err != nil {
			return nil, fmt.Errorf("failed to scan department count: %w", err)
		}
		counts[department] = count
	}

	return counts, rows.Err()
}
