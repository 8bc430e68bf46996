package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/perfboard/perfboard/internal/domain"
	"github.com/perfboard/perfboard/internal/pkg/database"
	"github.com/perfboard/perfboard/internal/pkg/logger"
)

// ReportService aggregates data from both stores into dashboard
// reports. All aggregation is done in memory over full result sets;
// datasets are expected to fit comfortably.
type ReportService struct {
	employeeRepo   EmployeeRepository
	projectRepo    ProjectRepository
	assignmentRepo AssignmentRepository
	reviewRepo     ReviewRepository
	cache          *database.Cache
	now            func() time.Time
}

// NewReportService creates a new report service. The cache may be nil
// when Redis is disabled; all reports then compute on every call.
func NewReportService(
	employeeRepo EmployeeRepository,
	projectRepo ProjectRepository,
	assignmentRepo AssignmentRepository,
	reviewRepo ReviewRepository,
	cache *database.Cache,
) *ReportService {
	return &ReportService{
		employeeRepo:   employeeRepo,
		projectRepo:    projectRepo,
		assignmentRepo: assignmentRepo,
		reviewRepo:     reviewRepo,
		cache:          cache,
		now:            time.Now,
	}
}

// AssignmentRoster returns the full employee-project roster, one row
// per assignment, ordered by employee name then project name.
func (s *ReportService) AssignmentRoster(ctx context.Context) ([]domain.AssignmentReportRow, error) {
	return s.assignmentRepo.ReportRows(ctx)
}

// PerformanceSummary builds an employee's review summary: full review
// history, average rating, and tenure. Reviews with a zero rating
// still count toward the average, matching what the raw documents say.
func (s *ReportService) PerformanceSummary(ctx context.Context, employeeID int64) (*domain.PerformanceSummary, error) {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("report:summary:%d", employeeID)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		var summary domain.PerformanceSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
		// Stale or corrupt entry; drop it and recompute
		_ = s.cache.Delete(ctx, cacheKey)
	}

	reviews, err := s.reviewRepo.ListForEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, review := range reviews {
		total += review.OverallRating
	}
	var average float64
	if len(reviews) > 0 {
		average = total / float64(len(reviews))
	}

	summary := &domain.PerformanceSummary{
		Employee:      *employee,
		Reviews:       reviews,
		AverageRating: average,
		ReviewCount:   len(reviews),
		TenureYears:   employee.TenureYears(s.now()),
	}

	if encoded, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(encoded)); err != nil {
			logger.WithEmployeeID(employeeID).Warn("failed to cache performance summary", zap.Error(err))
		}
	}

	return summary, nil
}

// InvalidateSummary drops the cached summary for an employee. Called
// after a review submission so the next summary reflects it.
func (s *ReportService) InvalidateSummary(ctx context.Context, employeeID int64) {
	key := fmt.Sprintf("report:summary:%d", employeeID)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.WithEmployeeID(employeeID).Warn("failed to invalidate summary cache", zap.Error(err))
	}
}

// Overview returns top-level counts and breakdowns for the dashboard
// landing page. Only the relational store is consulted; the review
// store being down does not affect this report.
func (s *ReportService) Overview(ctx context.Context) (*domain.Overview, error) {
	employeeCount, err := s.employeeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	projectCount, err := s.projectRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	assignmentCount, err := s.assignmentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	departments, err := s.employeeRepo.CountByDepartment(ctx)
	if err != nil {
		return nil, err
	}

	statuses, err := s.projectRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Overview{
		EmployeeCount:   employeeCount,
		ProjectCount:    projectCount,
		AssignmentCount: assignmentCount,
		Departments:     departments,
		ProjectStatuses: statuses,
	}, nil
}
