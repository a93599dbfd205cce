// ABOUTME: Outcome sum type classifying every API response
// ABOUTME: One of success, success-empty, application error, session expired, network error

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common failure classes. Callers match with errors.Is.
var (
	ErrSessionExpired = errors.New("session expired")
	ErrNotFound       = errors.New("not found")
	ErrNetwork        = errors.New("network error")
)

// OutcomeKind identifies which variant of Outcome is populated.
type OutcomeKind int

const (
	// KindSuccess is a 2xx response with a JSON body.
	KindSuccess OutcomeKind = iota
	// KindSuccessEmpty is a 2xx response with no body (204).
	KindSuccessEmpty
	// KindApplicationError is a non-2xx, non-401 response.
	KindApplicationError
	// KindSessionExpired is a 401 response. The token has been cleared.
	KindSessionExpired
	// KindNetworkError is a transport failure with no response.
	KindNetworkError
)

// Outcome is the result of one pipeline call. Exactly one variant is
// populated: Data for KindSuccess, Message for the error kinds. Status
// carries the HTTP status code, or 0 when no response was received.
type Outcome struct {
	Kind    OutcomeKind
	Data    json.RawMessage
	Message string
	Status  int
}

// Err converts a non-success outcome into an error at the application
// boundary. Success variants return nil. The pipeline itself never
// returns errors; this is where value-based transport results become
// exception-style failures for resource clients and views.
func (o Outcome) Err() error {
	switch o.Kind {
	case KindSuccess, KindSuccessEmpty:
		return nil
	case KindSessionExpired:
		return ErrSessionExpired
	case KindNetworkError:
		return fmt.Errorf("%w: %s", ErrNetwork, o.Message)
	case KindApplicationError:
		if o.Status == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, o.Message)
		}
		return &APIError{Status: o.Status, Message: o.Message}
	default:
		return fmt.Errorf("unknown outcome kind %d", o.Kind)
	}
}

// APIError is a structured server-side error surfaced to the user.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// decodeInto parses a success outcome's body into v. SuccessEmpty
// leaves v untouched; the body is never parsed for that variant.
func decodeInto(o Outcome, v any) error {
	if err := o.Err(); err != nil {
		return err
	}
	if o.Kind == KindSuccessEmpty || len(o.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(o.Data, v); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}
