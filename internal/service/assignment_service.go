package service

import (
	"context"
	"time"

	"github.com/perfboard/perfboard/internal/domain"
	apperrors "github.com/perfboard/perfboard/internal/pkg/errors"
	"github.com/perfboard/perfboard/internal/validator"
)

// AssignmentRepository defines assignment persistence operations
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) (bool, error)
	Exists(ctx context.Context, employeeID, projectID int64) (bool, error)
	Delete(ctx context.Context, employeeID, projectID int64) (bool, error)
	ListForEmployee(ctx context.Context, employeeID int64) ([]domain.EmployeeProject, error)
	ListForProject(ctx context.Context, projectID int64) ([]domain.ProjectMember, error)
	ReportRows(ctx context.Context) ([]domain.AssignmentReportRow, error)
	Count(ctx context.Context) (int64, error)
}

// AssignmentService handles employee-project assignment operations
type AssignmentService struct {
	assignmentRepo AssignmentRepository
	employeeRepo   EmployeeRepository
	projectRepo    ProjectRepository
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(assignmentRepo AssignmentRepository, employeeRepo EmployeeRepository, projectRepo ProjectRepository) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
		projectRepo:    projectRepo,
	}
}

// Assign links an employee to a project with a role. Both sides must
// exist; a repeated assignment of the same pair is a Conflict. The
// repository's insert is the authoritative duplicate guard, so two
// concurrent assigns of the same pair produce exactly one row.
func (s *AssignmentService) Assign(ctx context.Context, input *domain.AssignmentInput) (*domain.Assignment, error) {
	if err := validator.Validate(input); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if _, err := s.employeeRepo.GetByID(ctx, input.EmployeeID); err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.GetByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	assignmentDate := time.Now()
	if input.AssignmentDate != "" {
		parsed, err := time.Parse(dateLayout, input.AssignmentDate)
		if err != nil {
			return nil, apperrors.Validation("assignmentDate must be a date in YYYY-MM-DD format")
		}
		assignmentDate = parsed
	}

	assignment := &domain.Assignment{
		EmployeeID:     input.EmployeeID,
		ProjectID:      input.ProjectID,
		Role:           input.Role,
		AssignmentDate: assignmentDate,
	}

	created, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperrors.Conflict("employee is already assigned to this project")
	}

	return assignment, nil
}

// Unassign removes the link between an employee and a project
func (s *AssignmentService) Unassign(ctx context.Context, employeeID, projectID int64) error {
	removed, err := s.assignmentRepo.Delete(ctx, employeeID, projectID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NotFound("assignment")
	}
	return nil
}

// ProjectsForEmployee lists the projects an employee is assigned to,
// with their role on each. The employee must exist.
func (s *AssignmentService) ProjectsForEmployee(ctx context.Context, employeeID int64) ([]domain.EmployeeProject, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.assignmentRepo.ListForEmployee(ctx, employeeID)
}

// MembersOfProject lists the employees assigned to a project, with
// their roles. The project must exist.
func (s *AssignmentService) MembersOfProject(ctx context.Context, projectID int64) ([]domain.ProjectMember, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.assignmentRepo.ListForProject(ctx, projectID)
}
