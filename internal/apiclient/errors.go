package apiclient

import (
	"errors"
	"fmt"
)

const (
	CodeNetwork  = "NETWORK_ERROR"
	CodeRejected = "REJECTED"
	CodeDecode   = "DECODE_ERROR"
)

// APIError is every failure the gateway reports: transport errors (Status 0),
// non-2xx responses and envelopes that came back with success=false.
type APIError struct {
	Message string
	Code    string
	Status  int
	Err     error
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return "api error: " + e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

func networkError(err error) *APIError {
	msg := "Network error occurred"
	if err != nil {
		msg = err.Error()
	}
	return &APIError{Message: msg, Code: CodeNetwork, Err: err}
}
