package backend

import (
	"encoding/json"
	"fmt"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
)

func networkError(op string, err error) error {
	return apperr.Network(op, err)
}

// statusError prefers the API's {"detail": "..."} message when present.
func statusError(op string, status int, raw []byte) error {
	detail := fmt.Sprintf("Error %d", status)
	var body struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Detail != nil {
		if s, ok := body.Detail.(string); ok && s != "" {
			detail = s
		} else if b, err := json.Marshal(body.Detail); err == nil {
			detail = string(b)
		}
	}
	return &apperr.ServiceError{Op: op, Status: status, Body: string(raw), Detail: detail}
}

func malformed(op string, status int, raw []byte, err error) error {
	return &apperr.ServiceError{
		Op:     op,
		Status: status,
		Body:   string(raw),
		Detail: fmt.Sprintf("malformed response: %v", err),
	}
}
