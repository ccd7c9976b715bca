package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the "error.code" field. The UI switches on these.
const (
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidReference   = "INVALID_REFERENCE"
	CodeValidation         = "VALIDATION_ERROR"
	CodeRateLimit          = "RATE_LIMIT"
	CodeInternal           = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type AppError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, code, message string, details interface{}) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Details: details}
}

func Unauthenticated(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthenticated, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, nil)
}

func Internal(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, message, nil)
}

// RespondError writes an AppError with its own status; anything else
// collapses to a 500 so store failures never leak internals.
func RespondError(c *gin.Context, err error) {
	appErr, ok := err.(*AppError)
	if !ok {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: ErrorBody{
			Code:    CodeInternal,
			Message: "internal server error",
		}})
		return
	}

	c.JSON(appErr.Status, ErrorResponse{Error: ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}})
}

func RespondValidationError(c *gin.Context, details interface{}) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
		Code:    CodeValidation,
		Message: "invalid request",
		Details: details,
	}})
}

func RespondOK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}
