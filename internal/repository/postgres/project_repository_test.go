package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfboard/perfboard/internal/domain"
	apperrors "github.com/perfboard/perfboard/internal/pkg/errors"
)

// createTestProject creates a project with test data
func createTestProject(name string) *domain.Project {
	return &domain.Project{
		Name:      name,
		StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:    domain.ProjectStatusDevelopment,
	}
}

func TestProjectRepository_Create(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	repo := NewProjectRepository(db)
	ctx := context.Background()
	name := "test-project-create"

	cleanupProjects(t, db, name)
	defer cleanupProjects(t, db, name)

	project := createTestProject(name)

	err := repo.Create(ctx, project)
	require.NoError(t, err)
	assert.Greater(t, project.ID, int64(0))

	fetched, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.Name, fetched.Name)
	assert.Equal(t, domain.ProjectStatusDevelopment, fetched.Status)
	assert.Nil(t, fetched.EndDate)
}

func TestProjectRepository_Create_WithEndDate(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	repo := NewProjectRepository(db)
	ctx := context.Background()
	name := "test-project-enddate"

	cleanupProjects(t, db, name)
	defer cleanupProjects(t, db, name)

	project := createTestProject(name)
	endDate := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	project.EndDate = &endDate
	project.Status = domain.ProjectStatusCompleted

	err := repo.Create(ctx, project)
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.EndDate)
	assert.Equal(t, endDate.Format("2006-01-02"), fetched.EndDate.Format("2006-01-02"))
	assert.Equal(t, domain.ProjectStatusCompleted, fetched.Status)
}

func TestProjectRepository_GetByID_NotFound(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	repo := NewProjectRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 999999999)
	assert.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProjectRepository_Update(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	repo := NewProjectRepository(db)
	ctx := context.Background()
	name := "test-project-update"

	cleanupProjects(t, db, name)
	defer cleanupProjects(t, db, name)

	project := createTestProject(name)
	require.NoError(t, repo.Create(ctx, project))

	project.Status = domain.ProjectStatusOnHold
	updated, err := repo.Update(ctx, project)
	require.NoError(t, err)
	assert.True(t, updated)

	fetched, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusOnHold, fetched.Status)

	t.Run("non-existent project", func(t *testing.T) {
		missing := createTestProject("test-project-missing")
		missing.ID = 999999999
		updated, err := repo.Update(ctx, missing)
		require.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestProjectRepository_Delete(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	repo := NewProjectRepository(db)
	ctx := context.Background()
	name := "test-project-delete"

	cleanupProjects(t, db, name)

	project := createTestProject(name)
	require.NoError(t, repo.Create(ctx, project))

	deleted, err := repo.Delete(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(ctx, project.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProjectRepository_Delete_WithMembers(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	employeeRepo := NewEmployeeRepository(db)
	projectRepo := NewProjectRepository(db)
	assignmentRepo := NewAssignmentRepository(db)
	ctx := context.Background()
	email := "test-project-member@example.com"
	name := "test-project-delete-members"

	cleanupEmployees(t, db, email)
	cleanupProjects(t, db, name)
	defer cleanupEmployees(t, db, email)
	defer cleanupProjects(t, db, name)

	employee := createTestEmployee(email)
	require.NoError(t, employeeRepo.Create(ctx, employee))

	project := createTestProject(name)
	require.NoError(t, projectRepo.Create(ctx, project))

	created, err := assignmentRepo.Create(ctx, &domain.Assignment{
		EmployeeID:     employee.ID,
		ProjectID:      project.ID,
		Role:           "Lead",
		AssignmentDate: time.Now(),
	})
	require.NoError(t, err)
	require.True(t, created)

	deleted, err := projectRepo.Delete(ctx, project.ID)
	assert.Error(t, err)
	assert.False(t, deleted)
	assert.True(t, apperrors.IsConflict(err))
}

func TestProjectRepository_CountByStatus(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	repo := NewProjectRepository(db)
	ctx := context.Background()
	names := []string{"test-status-count-1", "test-status-count-2"}

	cleanupProjects(t, db, names...)
	defer cleanupProjects(t, db, names...)

	for _, name := range names {
		p := createTestProject(name)
		p.Status = domain.ProjectStatusPlanning
		require.NoError(t, repo.Create(ctx, p))
	}

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, counts[domain.ProjectStatusPlanning], int64(2))
}
