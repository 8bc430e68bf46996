package service

import (
	"context"

	"github.com/perfboard/perfboard/internal/domain"
	apperrors "github.com/perfboard/perfboard/internal/pkg/errors"
	"github.com/perfboard/perfboard/internal/validator"
)

// ReviewRepository defines review document store operations.
// The store is append-only; there are no update or delete operations.
type ReviewRepository interface {
	Create(ctx context.Context, employeeID int64, input *domain.ReviewInput) (string, error)
	ListForEmployee(ctx context.Context, employeeID int64) ([]domain.Review, error)
	CountForEmployee(ctx context.Context, employeeID int64) (int64, error)
}

// ReviewService handles performance review operations. Referential
// validity against the employee table is checked here, before the
// document write; nothing in the document store itself enforces it.
type ReviewService struct {
	reviewRepo   ReviewRepository
	employeeRepo EmployeeRepository
}

// NewReviewService creates a new review service
func NewReviewService(reviewRepo ReviewRepository, employeeRepo EmployeeRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		employeeRepo: employeeRepo,
	}
}

// Submit records a performance review for an employee and returns the
// stored review with its assigned ID. The employee must exist; ratings
// and other loosely-typed attributes are stored as given.
func (s *ReviewService) Submit(ctx context.Context, employeeID int64, input *domain.ReviewInput) (*domain.Review, error) {
	if err := validator.Validate(input); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	id, err := s.reviewRepo.Create(ctx, employeeID, input)
	if err != nil {
		return nil, err
	}

	return &domain.Review{
		ID:                  id,
		EmployeeID:          employeeID,
		ReviewDate:          input.ReviewDate,
		ReviewerName:        input.ReviewerName,
		OverallRating:       input.OverallRating,
		Strengths:           input.Strengths,
		AreasForImprovement: input.AreasForImprovement,
		Comments:            input.Comments,
		GoalsForNextPeriod:  input.GoalsForNextPeriod,
		Extra:               input.Extra,
	}, nil
}

// ListForEmployee retrieves an employee's reviews, most recent first.
// The employee must exist even when they have no reviews yet.
func (s *ReviewService) ListForEmployee(ctx context.Context, employeeID int64) ([]domain.Review, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListForEmployee(ctx, employeeID)
}
