package supabase

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates the API key was rejected or lacks permission
// (including row-level-security denials reported as 401/403).
var ErrUnauthorized = errors.New("supabase: unauthorized")

// ErrFunctionNotFound indicates an RPC call targeted a function that does not exist.
var ErrFunctionNotFound = errors.New("supabase: function not found")

// APIError is a non-2xx response from the REST endpoint. PostgREST reports
// failures as {"message", "code", "details", "hint"}.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Code       string `json:"code"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.Code != "" {
		return fmt.Sprintf("supabase: HTTP %d (%s): %s", e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("supabase: HTTP %d: %s", e.StatusCode, msg)
}

// Unwrap maps status codes onto the sentinel errors so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 401, 403:
		return ErrUnauthorized
	}
	// PGRST202: function not found in the schema cache
	if e.Code == "PGRST202" {
		return ErrFunctionNotFound
	}
	return nil
}
