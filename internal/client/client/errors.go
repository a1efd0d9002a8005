package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable       = errors.New("connection failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrMalformedResponse = errors.New("malformed response")
)

// ErrorKind classifies an APIError.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindUnauthorized
	KindNotFound
	KindServer
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server error"
	case KindMalformed:
		return "malformed response"
	default:
		return "validation"
	}
}

// APIError is a backend failure with a message fit for display.
type APIError struct {
	Status  int
	Kind    ErrorKind
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

// Is lets callers match an APIError against the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrMalformedResponse:
		return e.Kind == KindMalformed
	}
	return false
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// newAPIError builds the error for a non-2xx response. The message is taken
// from the first string among "message", "detail" and "error".
func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		Status:  status,
		Kind:    kindForStatus(status),
		Message: errorMessage(status, body),
	}
}

func errorMessage(status int, body []byte) string {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, key := range []string{"message", "detail", "error"} {
			if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return "request failed: " + strings.ToLower(text)
	}
	return "request failed"
}

func malformed(status int, format string, args ...any) *APIError {
	return &APIError{Status: status, Kind: KindMalformed, Message: fmt.Sprintf(format, args...)}
}
