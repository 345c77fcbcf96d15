package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps storage and transport errors onto user-friendly codes.
// Sensitive internals stay hidden; the context string ("create product",
// "place order", ...) shapes the fallback message.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations carry a typed error and a
	// SQLSTATE class we can switch on directly.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return ErrorInfo{
				Code:    ResourceAlreadyExists,
				Message: duplicateMessage(pqErr.Constraint),
			}
		case "23503": // foreign_key_violation
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "The record is referenced by other data and cannot be changed",
			}
		case "23502": // not_null_violation
			return ErrorInfo{
				Code:    ValidationRequired,
				Message: fmt.Sprintf("Required field is missing: %s", pqErr.Column),
			}
		case "23514": // check_violation
			return ErrorInfo{
				Code:    ValidationInvalidInput,
				Message: "A value is outside the allowed range",
			}
		}
	}

	errStrLower := strings.ToLower(err.Error())

	// SQLite (tests) reports constraints as plain strings
	if strings.Contains(errStrLower, "unique constraint") || strings.Contains(errStrLower, "duplicate key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: duplicateMessage(errStrLower),
		}
	}
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "The record is referenced by other data and cannot be changed",
		}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "A downstream service is unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: defaultErrorMessage(context),
	}
}

func notFoundMessage(context string) string {
	switch {
	case strings.Contains(context, "product"):
		return "Product not found"
	case strings.Contains(context, "category"):
		return "Category not found"
	case strings.Contains(context, "cart"):
		return "Cart item not found"
	case strings.Contains(context, "order"):
		return "Order not found"
	case strings.Contains(context, "address"):
		return "Address not found"
	case strings.Contains(context, "user"):
		return "User not found"
	default:
		return "The requested record was not found"
	}
}

func duplicateMessage(detail string) string {
	switch {
	case strings.Contains(detail, "email"):
		return "That email is already in use"
	case strings.Contains(detail, "username"):
		return "That username is already in use"
	case strings.Contains(detail, "categories"), strings.Contains(detail, "name"):
		return "A record with that name already exists"
	default:
		return "A matching record already exists"
	}
}

func defaultErrorMessage(context string) string {
	if context == "" {
		return "Something went wrong. Please try again later"
	}
	return fmt.Sprintf("Failed to %s. Please try again later", context)
}
