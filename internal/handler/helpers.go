package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/perfboard/perfboard/internal/middleware"
	apperrors "github.com/perfboard/perfboard/internal/pkg/errors"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// errorResponse creates a standardized JSON error response.
func errorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorResponse{
		Error:   errorName(statusCode),
		Message: message,
	})
}

func errorName(statusCode int) string {
	switch statusCode {
	case fiber.StatusBadRequest:
		return "Bad Request"
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusConflict:
		return "Conflict"
	case fiber.StatusServiceUnavailable:
		return "Service Unavailable"
	case fiber.StatusInternalServerError:
		return "Internal Server Error"
	default:
		return "Error"
	}
}

// serviceError translates a service-layer error into an HTTP response.
// Application errors carry their own status and message; anything else
// is logged and reported as an opaque 500.
func serviceError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			logger.Error(fallback,
				zap.Error(err),
				zap.String("request_id", middleware.GetRequestID(c)),
			)
		}
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error:   errorName(appErr.StatusCode),
			Message: appErr.Message,
			Details: appErr.Details,
		})
	}

	logger.Error(fallback,
		zap.Error(err),
		zap.String("request_id", middleware.GetRequestID(c)),
	)
	return errorResponse(c, fiber.StatusInternalServerError, fallback)
}

// parseIDParam parses a positive integer path parameter.
func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errorResponse(c, fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
