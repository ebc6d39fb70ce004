package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and controllers. Services wrap these
// with context via %w; the HTTP error middleware maps them to status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrStoreUnavailable = errors.New("store unavailable")
)

func NotFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

func Conflict(what string) error {
	return fmt.Errorf("%s: %w", what, ErrConflict)
}

func InvalidArgument(what string) error {
	return fmt.Errorf("%s: %w", what, ErrInvalidArgument)
}

func Unauthorized(what string) error {
	return fmt.Errorf("%s: %w", what, ErrUnauthorized)
}

func StoreUnavailable(err error) error {
	return fmt.Errorf("%v: %w", err, ErrStoreUnavailable)
}

// StatusCode resolves the HTTP status for a wrapped taxonomy error.
// Unrecognized errors fall through to 500.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrConflict):
		return 409
	case errors.Is(err, ErrInvalidArgument):
		return 400
	case errors.Is(err, ErrUnauthorized):
		return 401
	case errors.Is(err, ErrStoreUnavailable):
		return 503
	default:
		return 500
	}
}
