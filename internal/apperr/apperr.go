// Package apperr classifies the errors that cross component boundaries
// in the storefront order flow.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrNetwork       = errors.New("network error")
	ErrService       = errors.New("service error")
	ErrConfiguration = errors.New("configuration error")
	ErrBusy          = errors.New("submission already in progress")
	ErrNotFound      = errors.New("not found")
	ErrDispatch      = errors.New("dispatch failed")
)

// ServiceError is returned when an endpoint was reachable but answered with a
// non-success status or a body that could not be decoded.
type ServiceError struct {
	Op     string
	Status int
	Body   string
	Detail string
}

func (e *ServiceError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s: body=%q", e.Op, e.Detail, e.Body)
	}
	return fmt.Sprintf("%s: status %d: %s: body=%q", e.Op, e.Status, e.Detail, e.Body)
}

func (e *ServiceError) Is(target error) bool {
	if target == ErrService {
		return true
	}
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Network wraps a transport failure so that errors.Is(err, ErrNetwork) holds.
func Network(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
}

// Dispatch marks err as a failed delivery channel. The remote status it
// carries no longer decides the buyer-facing status.
func Dispatch(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDispatch, err)
}

// Configuration wraps a configuration problem.
func Configuration(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrValidation):
		return "validation"

	case errors.Is(err, ErrBusy):
		return "busy"

	case errors.Is(err, ErrDispatch):
		return "dispatch"

	case errors.Is(err, ErrConfiguration):
		return "configuration"

	case errors.Is(err, ErrNotFound):
		return "not_found"

	case errors.Is(err, ErrService):
		return "service"

	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"

	case errors.Is(err, context.Canceled):
		return "canceled"

	case errors.Is(err, ErrNetwork):
		return "network"

	default:
		return "internal"
	}
}

func HTTPStatus(err error) int {
	switch Kind(err) {
	case "":
		return http.StatusOK
	case "validation":
		return http.StatusUnprocessableEntity
	case "busy":
		return http.StatusConflict
	case "not_found":
		return http.StatusNotFound
	case "network", "service", "configuration", "dispatch":
		return http.StatusBadGateway
	case "timeout":
		return http.StatusGatewayTimeout
	case "canceled":
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
