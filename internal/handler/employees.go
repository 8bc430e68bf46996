package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/perfboard/perfboard/internal/domain"
	"github.com/perfboard/perfboard/internal/service"
)

// EmployeesHandler handles employee endpoints
type EmployeesHandler struct {
	employeeService *service.EmployeeService
	logger          *zap.Logger
}

// NewEmployeesHandler creates a new employees handler
func NewEmployeesHandler(employeeService *service.EmployeeService, logger *zap.Logger) *EmployeesHandler {
	return &EmployeesHandler{
		employeeService: employeeService,
		logger:          logger,
	}
}

// ListEmployees handles GET /v1/employees
func (h *EmployeesHandler) ListEmployees(c *fiber.Ctx) error {
	employees, err := h.employeeService.List(c.Context())
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list employees")
	}

	return c.JSON(fiber.Map{
		"data": employees,
	})
}

// GetEmployee handles GET /v1/employees/:employeeId
func (h *EmployeesHandler) GetEmployee(c *fiber.Ctx) error {
	employeeID, err := parseIDParam(c, "employeeId")
	if err != nil {
		return err
	}

	employee, err := h.employeeService.Get(c.Context(), employeeID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to get employee")
	}

	return c.JSON(employee)
}

// CreateEmployee handles POST /v1/employees
func (h *EmployeesHandler) CreateEmployee(c *fiber.Ctx) error {
	var input domain.EmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	employee, err := h.employeeService.Create(c.Context(), &input)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to create employee")
	}

	return c.Status(fiber.StatusCreated).JSON(employee)
}

// UpdateEmployee handles PUT /v1/employees/:employeeId
func (h *EmployeesHandler) UpdateEmployee(c *fiber.Ctx) error {
	employeeID, err := parseIDParam(c, "employeeId")
	if err != nil {
		return err
	}

	var input domain.EmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	employee, err := h.employeeService.Update(c.Context(), employeeID, &input)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to update employee")
	}

	return c.JSON(employee)
}

// DeleteEmployee handles DELETE /v1/employees/:employeeId
func (h *EmployeesHandler) DeleteEmployee(c *fiber.Ctx) error {
	employeeID, err := parseIDParam(c, "employeeId")
	if err != nil {
		return err
	}

	if err := h.employeeService.Delete(c.Context(), employeeID); err != nil {
		return serviceError(c, h.logger, err, "Failed to delete employee")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
