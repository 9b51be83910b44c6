package pkg

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/simp-lee/sitecms/internal/domain"
)

// Response is the standard JSON envelope for successful API responses.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Timestamp  string      `json:"timestamp"`
}

// Pagination is the metadata block attached to list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON envelope for failed API responses.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Success sends a 200 JSON response with the given data.
func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: now(),
	})
}

// Created sends a 201 JSON response with the given data.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: now(),
	})
}

// List sends a 200 JSON response carrying one page of items and its metadata.
func List[T any](c *gin.Context, message string, page *domain.PageResult[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    items,
		Pagination: &Pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
		Timestamp: now(),
	})
}

// Error sends a JSON error response. If err is a *domain.AppError, its code is
// mapped to the appropriate HTTP status; otherwise 500 is returned.
// Internal failures are logged and answered with a generic message.
func Error(c *gin.Context, err error) {
	status := domain.HTTPStatusCode(err)

	var appErr *domain.AppError
	msg := "internal server error"
	if errors.As(err, &appErr) && status < http.StatusInternalServerError {
		msg = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
	}

	c.JSON(status, ErrorResponse{
		Success: false,
		Message: msg,
	})
}

// ValidationError sends a 400 JSON response with per-field validation error details.
// It detects validator.ValidationErrors and extracts field-level messages.
func ValidationError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		// Not a validation error; malformed JSON or a type mismatch.
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Message: "invalid request body",
			Errors:  []FieldError{{Field: "body", Message: err.Error()}},
		})
		return
	}

	fieldErrors := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Message: "validation error",
		Errors:  fieldErrors,
	})
}

var registerTagNameOnce sync.Once

// useJSONFieldNames makes the gin validator report JSON tag names.
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if name := parseJSONTagName(f.Tag.Get("json")); name != "" {
				return name
			}
			return f.Name
		})
	})
}

// BindAndValidate binds the JSON request body to obj and validates it.
// On failure it automatically sends a ValidationError response and returns false.
// Usage in handlers:
//
//	if !pkg.BindAndValidate(c, &req) { return }
func BindAndValidate(c *gin.Context, obj any) bool {
	useJSONFieldNames()
	if err := c.ShouldBindJSON(obj); err != nil {
		ValidationError(c, err)
		return false
	}
	return true
}

// fieldPath strips the root struct name from the validator namespace, so
// "CreateRequest.translations[en].planName" becomes "translations[en].planName".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	}
	if fe.Param() != "" {
		return "failed on " + fe.Tag() + "=" + fe.Param()
	}
	return "failed on " + fe.Tag()
}

// parseJSONTagName extracts the field name from a JSON struct tag value.
func parseJSONTagName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return ""
	}
	return name
}
