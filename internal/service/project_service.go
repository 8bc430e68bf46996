package service

import (
	"context"
	"fmt"
	"time"

	"github.com/perfboard/perfboard/internal/domain"
	apperrors "github.com/perfboard/perfboard/internal/pkg/errors"
	"github.com/perfboard/perfboard/internal/validator"
)

// ProjectRepository defines project persistence operations
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int64, error)
}

// ProjectService handles project operations
type ProjectService struct {
	projectRepo ProjectRepository
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// Create creates a new project. Status defaults to Planning when
// omitted; an end date before the start date is rejected.
func (s *ProjectService) Create(ctx context.Context, input *domain.ProjectInput) (*domain.Project, error) {
	project, err := projectFromInput(input)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// Get retrieves a project by ID
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// List retrieves all projects sorted by name
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projectRepo.ListAll(ctx)
}

// Update replaces a project's fields
func (s *ProjectService) Update(ctx context.Context, id int64, input *domain.ProjectInput) (*domain.Project, error) {
	project, err := projectFromInput(input)
	if err != nil {
		return nil, err
	}
	project.ID = id

	updated, err := s.projectRepo.Update(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if !updated {
		return nil, apperrors.NotFound("project")
	}

	return project, nil
}

// Delete removes a project. Deletion is refused while employees are
// still assigned to it.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.projectRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("project")
	}
	return nil
}

func projectFromInput(input *domain.ProjectInput) (*domain.Project, error) {
	if err := validator.Validate(input); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	startDate, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return nil, apperrors.Validation("startDate must be a date in YYYY-MM-DD format")
	}

	var endDate *time.Time
	if input.EndDate != "" {
		parsed, err := time.Parse(dateLayout, input.EndDate)
		if err != nil {
			return nil, apperrors.Validation("endDate must be a date in YYYY-MM-DD format")
		}
		if parsed.Before(startDate) {
			return nil, apperrors.Validation("endDate must not be before startDate")
		}
		endDate = &parsed
	}

	status := domain.ProjectStatusPlanning
	if input.Status != "" {
		status = domain.ProjectStatus(input.Status)
		if !status.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("status must be one of: %s, %s, %s, %s",
				domain.ProjectStatusPlanning, domain.ProjectStatusDevelopment,
				domain.ProjectStatusOnHold, domain.ProjectStatusCompleted))
		}
	}

	return &domain.Project{
		Name:      input.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    status,
	}, nil
}
