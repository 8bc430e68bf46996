package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/perfboard/perfboard/internal/service"
)

// ReportsHandler handles aggregate report endpoints
type ReportsHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(reportService *service.ReportService, logger *zap.Logger) *ReportsHandler {
	return &ReportsHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// GetOverview handles GET /v1/reports/overview
func (h *ReportsHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.reportService.Overview(c.Context())
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to build overview")
	}

	return c.JSON(overview)
}

// GetAssignmentRoster handles GET /v1/reports/assignments
func (h *ReportsHandler) GetAssignmentRoster(c *fiber.Ctx) error {
	rows, err := h.reportService.AssignmentRoster(c.Context())
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to build assignment roster")
	}

	return c.JSON(fiber.Map{
		"data": rows,
	})
}

// GetPerformanceSummary handles GET /v1/reports/performance/:employeeId
func (h *ReportsHandler) GetPerformanceSummary(c *fiber.Ctx) error {
	employeeID, err := parseIDParam(c, "employeeId")
	if err != nil {
		return err
	}

	summary, err := h.reportService.PerformanceSummary(c.Context(), employeeID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to build performance summary")
	}

	return c.JSON(summary)
}
