package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/perfboard/perfboard/internal/domain"
	"github.com/perfboard/perfboard/internal/service"
)

// ProjectsHandler handles project endpoints
type ProjectsHandler struct {
	projectService    *service.ProjectService
	assignmentService *service.AssignmentService
	logger            *zap.Logger
}

// NewProjectsHandler creates a new projects handler
func NewProjectsHandler(projectService *service.ProjectService, assignmentService *service.AssignmentService, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		projectService:    projectService,
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// ListProjects handles GET /v1/projects
func (h *ProjectsHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.projectService.List(c.Context())
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list projects")
	}

	return c.JSON(fiber.Map{
		"data": projects,
	})
}

// GetProject handles GET /v1/projects/:projectId
func (h *ProjectsHandler) GetProject(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "projectId")
	if err != nil {
		return err
	}

	project, err := h.projectService.Get(c.Context(), projectID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to get project")
	}

	return c.JSON(project)
}

// CreateProject handles POST /v1/projects
func (h *ProjectsHandler) CreateProject(c *fiber.Ctx) error {
	var input domain.ProjectInput
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	project, err := h.projectService.Create(c.Context(), &input)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to create project")
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// UpdateProject handles PUT /v1/projects/:projectId
func (h *ProjectsHandler) UpdateProject(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "projectId")
	if err != nil {
		return err
	}

	var input domain.ProjectInput
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	project, err := h.projectService.Update(c.Context(), projectID, &input)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to update project")
	}

	return c.JSON(project)
}

// DeleteProject handles DELETE /v1/projects/:projectId
func (h *ProjectsHandler) DeleteProject(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "projectId")
	if err != nil {
		return err
	}

	if err := h.projectService.Delete(c.Context(), projectID); err != nil {
		return serviceError(c, h.logger, err, "Failed to delete project")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListProjectMembers handles GET /v1/projects/:projectId/employees
func (h *ProjectsHandler) ListProjectMembers(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "projectId")
	if err != nil {
		return err
	}

	members, err := h.assignmentService.MembersOfProject(c.Context(), projectID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list project members")
	}

	return c.JSON(fiber.Map{
		"data": members,
	})
}
