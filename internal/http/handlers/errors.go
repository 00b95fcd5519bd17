package handlers

import (
	"errors"
	"net/http"
	"strings"

	"agencylms/internal/domain"
	"agencylms/internal/http/middleware"
	"agencylms/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details map[string]string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Unknown errors are logged
// and answered with a generic 500.
func RespondDomainError(c *gin.Context, err error) {
	status, code, msg, details := classify(c, err)
	respondError(c, status, code, msg, details)
}

func classify(c *gin.Context, err error) (int, string, string, map[string]string) {
	var verr domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "validation_error", validationSummary(verr), verr.Details()
	case domain.IsNotFound(err):
		return http.StatusNotFound, "not_found", err.Error(), nil
	case domain.IsConflict(err):
		return http.StatusConflict, "conflict", conflictMessage(err), nil
	case domain.IsUnauthorized(err):
		return http.StatusUnauthorized, "unauthorized", err.Error(), nil
	case domain.IsForbidden(err):
		return http.StatusForbidden, "forbidden", err.Error(), nil
	default:
		utils.LogWarn(c.Request.Context(), "http", c.FullPath(), "request failed", err)
		return http.StatusInternalServerError, "internal_error", "something went wrong, please try again later", nil
	}
}

// validationSummary is the single banner line; the first field message is the most useful.
func validationSummary(verr domain.ValidationError) string {
	if verr.Msg != "" {
		return verr.Msg
	}
	for _, f := range orderedFields {
		if m, ok := verr.Fields[f]; ok {
			return m
		}
	}
	for _, m := range verr.Fields {
		return m
	}
	return "validation failed"
}

var orderedFields = []string{
	"fullName", "firstName", "lastName", "name", "email", "phone", "address", "city", "state", "pincode",
	"paymentScreenshot", "transactionId", "courseId", "service", "message", "password",
}

func conflictMessage(err error) string {
	var cerr domain.ConflictError
	if errors.As(err, &cerr) && cerr.Msg != "" {
		return cerr.Msg
	}
	return err.Error()
}

// bindError turns gin binding failures into a ValidationError with per-field messages.
func bindError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return domain.ValidationError{Msg: "invalid request body", Err: err}
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		name := lowerFirst(fe.Field())
		fields[name] = fieldMessage(name, fe)
	}
	return domain.ValidationError{Fields: fields, Err: err}
}

func fieldMessage(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return "Please enter a valid email address"
	case "url":
		return name + " must be a valid URL"
	case "min":
		return name + " must be at least " + fe.Param() + " characters"
	case "max":
		return name + " must be at most " + fe.Param() + " characters"
	case "gt", "gte":
		return name + " must be greater than " + fe.Param()
	case "lte":
		return name + " must be at most " + fe.Param()
	case "oneof":
		return name + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return name + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
