package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/perfboard/perfboard/internal/domain"
	"github.com/perfboard/perfboard/internal/service"
)

// ReviewsHandler handles performance review endpoints
type ReviewsHandler struct {
	reviewService *service.ReviewService
	reportService *service.ReportService
	logger        *zap.Logger
}

// NewReviewsHandler creates a new reviews handler
func NewReviewsHandler(reviewService *service.ReviewService, reportService *service.ReportService, logger *zap.Logger) *ReviewsHandler {
	return &ReviewsHandler{
		reviewService: reviewService,
		reportService: reportService,
		logger:        logger,
	}
}

// SubmitReview handles POST /v1/employees/:employeeId/reviews
func (h *ReviewsHandler) SubmitReview(c *fiber.Ctx) error {
	employeeID, err := parseIDParam(c, "employeeId")
	if err != nil {
		return err
	}

	var input domain.ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	review, err := h.reviewService.Submit(c.Context(), employeeID, &input)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to submit review")
	}

	// The cached summary is stale as of this write
	h.reportService.InvalidateSummary(c.Context(), employeeID)

	return c.Status(fiber.StatusCreated).JSON(review)
}

// ListReviews handles GET /v1/employees/:employeeId/reviews
func (h *ReviewsHandler) ListReviews(c *fiber.Ctx) error {
	employeeID, err := parseIDParam(c, "employeeId")
	if err != nil {
		return err
	}

	reviews, err := h.reviewService.ListForEmployee(c.Context(), employeeID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list reviews")
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return c.JSON(fiber.Map{
		"data": reviews,
	})
}
