package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when a referenced entity is absent or not
	// owned by the caller. The two cases are intentionally the same error
	// so callers cannot probe for other users' data.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock is returned when a requested quantity exceeds
	// a product's current stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDuplicateOrder is returned when a generated or submitted order
	// id collides with an existing order.
	ErrDuplicateOrder = errors.New("order ID already exists")

	// ErrConflict is returned on duplicate email/vendor registration.
	ErrConflict = errors.New("already exists")

	// ErrUnauthorized is returned for a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned for a valid credential with an
	// insufficient role.
	ErrForbidden = errors.New("forbidden")

	// ErrVendorAccountMismatch is returned when a credential is used on
	// the wrong login surface: a vendor-owning user on the customer
	// login, or a plain customer on the vendor login.
	ErrVendorAccountMismatch = errors.New("vendor account mismatch")
)

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validationf builds a ValidationError for a field.
func Validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus translates a domain error into the status code the request
// boundary responds with. Unmapped errors are internal.
func HTTPStatus(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrDuplicateOrder),
		errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrVendorAccountMismatch):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
