package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	consumptiondomain "github.com/sunstack-labs/sunstack/internal/consumption/domain"
	locationdomain "github.com/sunstack-labs/sunstack/internal/location/domain"
	subsidydomain "github.com/sunstack-labs/sunstack/internal/subsidy/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrInternal           = errors.New("internal_error")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Code:    err.Error(),
			Message: "validation error",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, locationdomain.ErrUpstream),
		errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, subsidydomain.ErrInvalidID),
		errors.Is(err, subsidydomain.ErrInvalidName),
		errors.Is(err, subsidydomain.ErrInvalidRegionCode),
		errors.Is(err, subsidydomain.ErrInvalidKind),
		errors.Is(err, subsidydomain.ErrInvalidValue),
		errors.Is(err, subsidydomain.ErrInvalidEntityType),
		errors.Is(err, subsidydomain.ErrInvalidKwpBound),
		errors.Is(err, subsidydomain.ErrInvalidMaxAmount),
		errors.Is(err, subsidydomain.ErrInvalidDate),
		errors.Is(err, subsidydomain.ErrInvalidSystemKwp),
		errors.Is(err, consumptiondomain.ErrInvalidOccupants),
		errors.Is(err, consumptiondomain.ErrInvalidArea),
		errors.Is(err, consumptiondomain.ErrInvalidHourlyProfile),
		errors.Is(err, locationdomain.ErrInvalidCoordinates):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, subsidydomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
