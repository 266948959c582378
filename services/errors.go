package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrorKind classifies service failures so transports can map them to status codes
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindUnauthorized
	KindNotFound
	KindConflict
)

// Error is a terminal, client-facing service failure
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsKind reports whether err is a service Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var svcErr *Error
	return errors.As(err, &svcErr) && svcErr.Kind == kind
}

func validationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: fmt.Sprintf(format, args...)}
}

func unauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

func notFoundError(entity string) *Error {
	return &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: entity + " not found"}
}

func conflictError(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

// translateDBError maps driver errors (works with both PostgreSQL and SQLite) onto service errors
func translateDBError(err error, entity string) error {
	if err == nil {
		return nil
	}

	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundError(entity)
	}
	if isUniqueViolation(err) {
		return conflictError("DUPLICATE_ENTRY", "%s already exists", entity)
	}
	if isForeignKeyViolation(err) {
		return conflictError("FOREIGN_KEY_VIOLATION", "%s references missing or dependent rows", entity)
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate") ||
		strings.Contains(errMsg, "unique constraint")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}
