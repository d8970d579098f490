package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

/* ===============================
   Domain error taxonomy
   - Validation      → 400
   - Conflict        → 409
   - PermissionDenied→ 403
   - NotFound        → 404
   - Unavailable     → 500 (store/network failure, generic message)
=================================*/

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindPermissionDenied
	KindNotFound
	KindUnavailable
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string // optional field-level detail (validation)
}

func (e *AppError) Error() string { return e.Message }

func NewValidation(msg string, fields map[string]string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg, Fields: fields}
}

func NewConflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

func NewPermissionDenied(msg string) *AppError {
	return &AppError{Kind: KindPermissionDenied, Message: msg}
}

func NewNotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func NewUnavailable(msg string) *AppError {
	return &AppError{Kind: KindUnavailable, Message: msg}
}

// JsonAppError maps a domain error onto the JSON envelope. Unknown errors are
// treated as store failures: generic message out, real error stays in the log.
func JsonAppError(c *fiber.Ctx, err error) error {
	var ae *AppError
	if errors.As(err, &ae) {
		code := fiber.StatusInternalServerError
		switch ae.Kind {
		case KindValidation:
			code = fiber.StatusBadRequest
		case KindConflict:
			code = fiber.StatusConflict
		case KindPermissionDenied:
			code = fiber.StatusForbidden
		case KindNotFound:
			code = fiber.StatusNotFound
		case KindUnavailable:
			code = fiber.StatusInternalServerError
		}
		if len(ae.Fields) > 0 {
			return ErrorWithDetails(c, code, ae.Message, ae.Fields)
		}
		return Error(c, code, ae.Message)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Error(c, fiber.StatusNotFound, "Data not found")
	}
	return Error(c, fiber.StatusInternalServerError, "Something went wrong, please try again")
}

// IsUniqueViolation detects a Postgres unique violation ("23505"). Typed check
// first (lib/pq); string fallback keeps it working through wrapped driver
// errors and the sqlite test driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "sqlstate 23505") ||
		strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint")
}
