package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/perfboard/perfboard/internal/domain"
	"github.com/perfboard/perfboard/internal/service"
)

// AssignmentsHandler handles employee-project assignment endpoints
type AssignmentsHandler struct {
	assignmentService *service.AssignmentService
	logger            *zap.Logger
}

// NewAssignmentsHandler creates a new assignments handler
func NewAssignmentsHandler(assignmentService *service.AssignmentService, logger *zap.Logger) *AssignmentsHandler {
	return &AssignmentsHandler{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// CreateAssignment handles POST /v1/assignments
func (h *AssignmentsHandler) CreateAssignment(c *fiber.Ctx) error {
	var input domain.AssignmentInput
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	assignment, err := h.assignmentService.Assign(c.Context(), &input)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to create assignment")
	}

	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// DeleteAssignment handles DELETE /v1/employees/:employeeId/projects/:projectId
func (h *AssignmentsHandler) DeleteAssignment(c *fiber.Ctx) error {
	employeeID, err := parseIDParam(c, "employeeId")
	if err != nil {
		return err
	}
	projectID, err := parseIDParam(c, "projectId")
	if err != nil {
		return err
	}

	if err := h.assignmentService.Unassign(c.Context(), employeeID, projectID); err != nil {
		return serviceError(c, h.logger, err, "Failed to delete assignment")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListEmployeeProjects handles GET /v1/employees/:employeeId/projects
func (h *AssignmentsHandler) ListEmployeeProjects(c *fiber.Ctx) error {
	employeeID, err := parseIDParam(c, "employeeId")
	if err != nil {
		return err
	}

	projects, err := h.assignmentService.ProjectsForEmployee(c.Context(), employeeID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list employee projects")
	}

	return c.JSON(fiber.Map{
		"data": projects,
	})
}
