package utils

import (
	"errors"
	"net/http"
	"time"

	"fleetdesk/internal/models"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Meta      *Meta       `json:"meta,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type Meta struct {
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Total      int64           `json:"total,omitempty"`
	Count      int             `json:"count,omitempty"`
}

func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func SuccessResponseWithMeta(c *gin.Context, message string, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Meta:      meta,
		Timestamp: time.Now(),
	})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, APIResponse{
		Status: StatusError,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now(),
	})
}

func ErrorResponseWithDetails(c *gin.Context, statusCode int, code, message string, details map[string]string) {
	c.JSON(statusCode, APIResponse{
		Status: StatusError,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
	})
}

func ValidationErrorResponse(c *gin.Context, errors map[string]string) {
	ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", ErrValidationFailed, errors)
}

func InternalServerErrorResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", ErrInternalServer)
}

func UnauthorizedResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", ErrUnauthorized)
}

func ForbiddenResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", ErrForbidden)
}

func NotFoundResponse(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", resource+" not found")
}

func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// DomainErrorResponse maps the service-layer error taxonomy onto HTTP status
// codes and error codes the console understands.
func DomainErrorResponse(c *gin.Context, err error) {
	var (
		validationErr *models.ValidationError
		stateErr      *models.InvalidStateError
		conflictErr   *models.ConflictError
		authErr       *models.AuthorizationError
		notFoundErr   *models.NotFoundError
		transientErr  *models.TransientError
	)

	switch {
	case errors.As(err, &validationErr):
		details := map[string]string{}
		if validationErr.Field != "" {
			details[validationErr.Field] = validationErr.Message
		}
		ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Error(), details)
	case errors.As(err, &stateErr):
		ErrorResponse(c, http.StatusConflict, "INVALID_STATE", stateErr.Error())
	case errors.As(err, &conflictErr):
		ErrorResponse(c, http.StatusConflict, "CONFLICT", conflictErr.Error())
	case errors.As(err, &authErr):
		ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", authErr.Error())
	case errors.As(err, &notFoundErr):
		ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", notFoundErr.Error())
	case errors.As(err, &transientErr):
		ErrorResponse(c, http.StatusServiceUnavailable, "TRANSIENT", "Temporary backend failure, please retry")
	default:
		InternalServerErrorResponse(c)
	}
}
