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

// MockProjectRepo mocks the project repository for handler tests.
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepo) ListAll(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepo) Update(ctx context.Context, project *domain.Project) (bool, error) {
	args := m.Called(ctx, project)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepo) CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.ProjectStatus]int64), args.Error(1)
}

// MockAssignmentRepo mocks the assignment repository for handler tests.
type MockAssignmentRepo struct {
	mock.Mock
}

func (m *MockAssignmentRepo) Create(ctx context.Context, assignment *domain.Assignment) (bool, error) {
	args := m.Called(ctx, assignment)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepo) Exists(ctx context.Context, employeeID, projectID int64) (bool, error) {
	args := m.Called(ctx, employeeID, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepo) Delete(ctx context.Context, employeeID, projectID int64) (bool, error) {
	args := m.Called(ctx, employeeID, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepo) ListForEmployee(ctx context.Context, employeeID int64) ([]domain.EmployeeProject, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmployeeProject), args.Error(1)
}

func (m *MockAssignmentRepo) ListForProject(ctx context.Context, projectID int64) ([]domain.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProjectMember), args.Error(1)
}

func (m *MockAssignmentRepo) ReportRows(ctx context.Context) ([]domain.AssignmentReportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssignmentReportRow), args.Error(1)
}

func (m *MockAssignmentRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func setupAssignmentsApp(assignmentRepo *MockAssignmentRepo, employeeRepo *MockEmployeeRepo, projectRepo *MockProjectRepo) *fiber.App {
	app := fiber.New()
	svc := service.NewAssignmentService(assignmentRepo, employeeRepo, projectRepo)
	h := NewAssignmentsHandler(svc, zap.NewNop())

	app.Post("/v1/assignments", h.CreateAssignment)
	app.Delete("/v1/employees/:employeeId/projects/:projectId", h.DeleteAssignment)
	app.Get("/v1/employees/:employeeId/projects", h.ListEmployeeProjects)

	return app
}

func TestAssignmentsHandler_CreateAssignment(t *testing.T) {
	employee := &domain.Employee{ID: 7}
	project := &domain.Project{ID: 3}

	t.Run("creates assignment", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		employeeRepo := new(MockEmployeeRepo)
		projectRepo := new(MockProjectRepo)
		app := setupAssignmentsApp(assignmentRepo, employeeRepo, projectRepo)

		employeeRepo.On("GetByID", mock.Anything, int64(7)).Return(employee, nil)
		projectRepo.On("GetByID", mock.Anything, int64(3)).Return(project, nil)
		assignmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Assignment")).Return(true, nil)

		payload := `{"employeeId":7,"projectId":3,"role":"Developer"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/assignments", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var assignment domain.Assignment
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&assignment))
		assert.Equal(t, "Developer", assignment.Role)
	})

	t.Run("returns 409 for duplicate assignment", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		employeeRepo := new(MockEmployeeRepo)
		projectRepo := new(MockProjectRepo)
		app := setupAssignmentsApp(assignmentRepo, employeeRepo, projectRepo)

		employeeRepo.On("GetByID", mock.Anything, int64(7)).Return(employee, nil)
		projectRepo.On("GetByID", mock.Anything, int64(3)).Return(project, nil)
		assignmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Assignment")).Return(false, nil)

		payload := `{"employeeId":7,"projectId":3,"role":"Developer"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/assignments", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("returns 404 for unknown employee", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		employeeRepo := new(MockEmployeeRepo)
		projectRepo := new(MockProjectRepo)
		app := setupAssignmentsApp(assignmentRepo, employeeRepo, projectRepo)

		employeeRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, apperrors.NotFound("employee"))

		payload := `{"employeeId":404,"projectId":3,"role":"Developer"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/assignments", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAssignmentsHandler_DeleteAssignment(t *testing.T) {
	t.Run("removes assignment", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		app := setupAssignmentsApp(assignmentRepo, new(MockEmployeeRepo), new(MockProjectRepo))

		assignmentRepo.On("Delete", mock.Anything, int64(7), int64(3)).Return(true, nil)

		req := httptest.NewRequest(http.MethodDelete, "/v1/employees/7/projects/3", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("returns 404 for missing assignment", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		app := setupAssignmentsApp(assignmentRepo, new(MockEmployeeRepo), new(MockProjectRepo))

		assignmentRepo.On("Delete", mock.Anything, int64(7), int64(3)).Return(false, nil)

		req := httptest.NewRequest(http.MethodDelete, "/v1/employees/7/projects/3", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAssignmentsHandler_ListEmployeeProjects(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepo)
	employeeRepo := new(MockEmployeeRepo)
	app := setupAssignmentsApp(assignmentRepo, employeeRepo, new(MockProjectRepo))

	employeeRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Employee{ID: 7}, nil)
	assignmentRepo.On("ListForEmployee", mock.Anything, int64(7)).Return([]domain.EmployeeProject{
		{Project: domain.Project{ID: 3, Name: "Apollo"}, Role: "Developer"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/employees/7/projects", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []domain.EmployeeProject `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Apollo", body.Data[0].Project.Name)
}
