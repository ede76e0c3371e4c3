package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the service layer. Handlers map these to HTTP
// statuses; the codes stay distinct internally even when two of them share
// a wire status (e.g. a non-owner post delete reports 404 like a missing post).
const (
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is a structured application error. Key is the single JSON key the
// API uses in its error body (e.g. {"noProfile": "There is no profile for
// this user"}).
type AppError struct {
	Code    string
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError builds a 404-class error with the given body key.
func NewNotFoundError(key, message string) *AppError {
	return &AppError{Code: CodeNotFound, Key: key, Message: message}
}

// NewUnauthorizedError builds a 401-class error with the given body key.
func NewUnauthorizedError(key, message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Key: key, Message: message}
}

// NewForbiddenError builds an ownership error. It is kept distinct from
// NOT_FOUND internally even where the API reports both identically.
func NewForbiddenError(key, message string) *AppError {
	return &AppError{Code: CodeForbidden, Key: key, Message: message}
}

// NewConflictError builds a duplicate-resource error keyed by the
// conflicting field.
func NewConflictError(field, message string) *AppError {
	return &AppError{Code: CodeConflict, Key: field, Message: message}
}

// NewInternalError wraps an infrastructure failure.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Key: "error", Message: "Internal server error", Err: err}
}

// ValidationErrors is the field→message map produced by request validators.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// RespondWithError writes a JSON error body in the API's legacy shape:
// validation failures render the raw field→message map, everything else a
// single-key message object.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	switch e := err.(type) {
	case ValidationErrors:
		return c.Status(status).JSON(e)
	case *AppError:
		return c.Status(status).JSON(fiber.Map{e.Key: e.Message})
	default:
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
}

// StatusForError maps an application error to its HTTP status. Ownership
// failures on post deletion are reported as 404 for wire compatibility; the
// caller opts into that with notFoundForForbidden.
func StatusForError(err error, notFoundForForbidden bool) int {
	switch e := err.(type) {
	case ValidationErrors:
		return fiber.StatusBadRequest
	case *AppError:
		switch e.Code {
		case CodeNotFound:
			return fiber.StatusNotFound
		case CodeUnauthorized:
			return fiber.StatusUnauthorized
		case CodeForbidden:
			if notFoundForForbidden {
				return fiber.StatusNotFound
			}
			return fiber.StatusUnauthorized
		case CodeConflict, CodeValidation:
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}
