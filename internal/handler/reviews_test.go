package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/perfboard/perfboard/internal/domain"
	apperrors "github.com/perfboard/perfboard/internal/pkg/errors"
	"github.com/perfboard/perfboard/internal/service"
)

// MockReviewRepo mocks the review repository for handler tests.
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, employeeID int64, input *domain.ReviewInput) (string, error) {
	args := m.Called(ctx, employeeID, input)
	return args.String(0), args.Error(1)
}

func (m *MockReviewRepo) ListForEmployee(ctx context.Context, employeeID int64) ([]domain.Review, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepo) CountForEmployee(ctx context.Context, employeeID int64) (int64, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(int64), args.Error(1)
}

func setupReviewsApp(reviewRepo *MockReviewRepo, employeeRepo *MockEmployeeRepo) *fiber.App {
	app := fiber.New()
	logger := zap.NewNop()

	reviewSvc := service.NewReviewService(reviewRepo, employeeRepo)
	reportSvc := service.NewReportService(employeeRepo, nil, nil, reviewRepo, nil)
	h := NewReviewsHandler(reviewSvc, reportSvc, logger)

	app.Post("/v1/employees/:employeeId/reviews", h.SubmitReview)
	app.Get("/v1/employees/:employeeId/reviews", h.ListReviews)

	return app
}

func TestReviewsHandler_SubmitReview(t *testing.T) {
	employee := &domain.Employee{ID: 7, FirstName: "Ada", LastName: "Lovelace"}

	t.Run("submits review", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		employeeRepo := new(MockEmployeeRepo)
		app := setupReviewsApp(reviewRepo, employeeRepo)

		employeeRepo.On("GetByID", mock.Anything, int64(7)).Return(employee, nil)
		reviewRepo.On("Create", mock.Anything, int64(7), mock.AnythingOfType("*domain.ReviewInput")).
			Return("665f1e2a9c301f0012ab34cd", nil)

		payload := `{"reviewDate":"2025-06-30","reviewerName":"Grace Hopper","overallRating":4.5,"strengths":["delivery"]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/employees/7/reviews", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var review domain.Review
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&review))
		assert.Equal(t, "665f1e2a9c301f0012ab34cd", review.ID)
		assert.Equal(t, int64(7), review.EmployeeID)
	})

	t.Run("returns 404 for unknown employee", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		employeeRepo := new(MockEmployeeRepo)
		app := setupReviewsApp(reviewRepo, employeeRepo)

		employeeRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, apperrors.NotFound("employee"))

		payload := `{"reviewDate":"2025-06-30","reviewerName":"Grace Hopper"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/employees/404/reviews", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		reviewRepo.AssertNotCalled(t, "Create")
	})

	t.Run("returns 503 when review store is down", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		employeeRepo := new(MockEmployeeRepo)
		app := setupReviewsApp(reviewRepo, employeeRepo)

		employeeRepo.On("GetByID", mock.Anything, int64(7)).Return(employee, nil)
		reviewRepo.On("Create", mock.Anything, int64(7), mock.AnythingOfType("*domain.ReviewInput")).
			Return("", apperrors.Unavailable("review store"))

		payload := `{"reviewDate":"2025-06-30","reviewerName":"Grace Hopper"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/employees/7/reviews", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestReviewsHandler_ListReviews(t *testing.T) {
	employee := &domain.Employee{ID: 7}

	t.Run("lists reviews", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		employeeRepo := new(MockEmployeeRepo)
		app := setupReviewsApp(reviewRepo, employeeRepo)

		employeeRepo.On("GetByID", mock.Anything, int64(7)).Return(employee, nil)
		reviewRepo.On("ListForEmployee", mock.Anything, int64(7)).Return([]domain.Review{
			{ID: "b", ReviewDate: "2025-06-30"},
			{ID: "a", ReviewDate: "2024-12-31"},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/employees/7/reviews", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data []domain.Review `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Data, 2)
		assert.Equal(t, "2025-06-30", body.Data[0].ReviewDate)
	})

	t.Run("returns empty list for employee without reviews", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		employeeRepo := new(MockEmployeeRepo)
		app := setupReviewsApp(reviewRepo, employeeRepo)

		employeeRepo.On("GetByID", mock.Anything, int64(7)).Return(employee, nil)
		reviewRepo.On("ListForEmployee", mock.Anything, int64(7)).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/employees/7/reviews", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data []domain.Review `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotNil(t, body.Data)
		assert.Empty(t, body.Data)
	})
}
