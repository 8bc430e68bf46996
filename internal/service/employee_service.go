package service

import (
	"context"
	"fmt"
	"time"

	"github.com/perfboard/perfboard/internal/domain"
	apperrors "github.com/perfboard/perfboard/internal/pkg/errors"
	"github.com/perfboard/perfboard/internal/validator"
)

const dateLayout = "2006-01-02"

// EmployeeRepository defines employee persistence operations
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	ListAll(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByDepartment(ctx context.Context) (map[string]int64, error)
}

// EmployeeService handles employee operations
type EmployeeService struct {
	employeeRepo EmployeeRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// Create registers a new employee. The email is normalized before
// storage; duplicates surface as a Conflict error from the repository.
func (s *EmployeeService) Create(ctx context.Context, input *domain.EmployeeInput) (*domain.Employee, error) {
	if err := validator.Validate(input); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	hireDate, err := time.Parse(dateLayout, input.HireDate)
	if err != nil {
		return nil, apperrors.Validation("hireDate must be a date in YYYY-MM-DD format")
	}

	employee := &domain.Employee{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      domain.NormalizeEmail(input.Email),
		HireDate:   hireDate,
		Department: input.Department,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	return employee, nil
}

// Get retrieves an employee by ID
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

// GetByEmail retrieves an employee by normalized email
func (s *EmployeeService) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return s.employeeRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
}

// List retrieves all employees sorted by last name then first name
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.employeeRepo.ListAll(ctx)
}

// Update replaces an employee's fields. The full input is required;
// partial updates are not supported.
func (s *EmployeeService) Update(ctx context.Context, id int64, input *domain.EmployeeInput) (*domain.Employee, error) {
	if err := validator.Validate(input); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	hireDate, err := time.Parse(dateLayout, input.HireDate)
	if err != nil {
		return nil, apperrors.Validation("hireDate must be a date in YYYY-MM-DD format")
	}

	employee := &domain.Employee{
		ID:         id,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      domain.NormalizeEmail(input.Email),
		HireDate:   hireDate,
		Department: input.Department,
	}

	updated, err := s.employeeRepo.Update(ctx, employee)
	if err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	if !updated {
		return nil, apperrors.NotFound("employee")
	}

	return employee, nil
}

// Delete removes an employee. Deletion is refused while the employee
// still holds project assignments.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.employeeRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("employee")
	}
	return nil
}
