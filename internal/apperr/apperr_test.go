package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation_wrapped", err: fmt.Errorf("form: %w", ErrValidation), want: "validation"},
		{name: "network", err: Network("get products", errors.New("dial tcp: refused")), want: "network"},
		{name: "service", err: &ServiceError{Op: "create order", Status: 500, Body: "boom"}, want: "service"},
		{name: "service_404", err: &ServiceError{Op: "get product", Status: 404}, want: "not_found"},
		{name: "configuration", err: Configuration("missing %s", "SERVICE_ID"), want: "configuration"},
		{name: "busy", err: ErrBusy, want: "busy"},
		{name: "dispatch_over_404", err: Dispatch("dispatch r1", &ServiceError{Op: "relay send", Status: 404}), want: "dispatch"},
		{name: "deadline", err: Network("send", context.DeadlineExceeded), want: "timeout"},
		{name: "canceled", err: context.Canceled, want: "canceled"},
		{name: "unknown", err: errors.New("unknown"), want: "internal"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Kind(tt.err); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "validation", err: ErrValidation, want: http.StatusUnprocessableEntity},
		{name: "busy", err: ErrBusy, want: http.StatusConflict},
		{name: "not_found", err: ErrNotFound, want: http.StatusNotFound},
		{name: "service", err: &ServiceError{Status: 503}, want: http.StatusBadGateway},
		{name: "network", err: Network("x", errors.New("eof")), want: http.StatusBadGateway},
		{name: "dispatch_remote_404", err: Dispatch("dispatch r1", &ServiceError{Status: 404}), want: http.StatusBadGateway},
		{name: "unknown", err: errors.New("unknown"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestServiceErrorIncludesStatusAndBody(t *testing.T) {
	err := &ServiceError{Op: "create order", Status: 500, Body: `{"detail":"db locked"}`, Detail: "db locked"}
	msg := err.Error()
	if !strings.Contains(msg, "500") || !strings.Contains(msg, "db locked") {
		t.Fatalf("expected status and body in %q", msg)
	}
	if !errors.Is(fmt.Errorf("wrap: %w", err), ErrService) {
		t.Fatalf("expected wrapped service error to match ErrService")
	}
}
