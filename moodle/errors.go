package moodle

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid moodle configuration")
	// ErrInvalidResponse indicates the service answered with something other than JSON
	ErrInvalidResponse = errors.New("invalid response from moodle")
	// ErrReservedParam indicates call parameters collide with the connection parameters
	ErrReservedParam = errors.New("parameter collides with a connection parameter")
	// ErrUnsupportedMethod indicates an HTTP method other than GET or POST
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
)

// APIError represents a non-2xx HTTP response from the web-service endpoint
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("moodle API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// TransportError wraps a network or TLS failure. It is never retried.
type TransportError struct {
	Function string
	Err      error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("moodle request %s failed: %v", e.Function, e.Err)
}

// Unwrap returns the underlying transport error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError is the exception payload Moodle returns, with HTTP 200, when a
// web-service function fails. Its fields are reported as received.
type RemoteError struct {
	Function  string
	Exception string
	ErrorCode string
	Message   string
	DebugInfo string
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("moodle %s: %s: %s", e.Function, e.ErrorCode, e.Message)
	if e.DebugInfo != "" {
		msg += " (" + e.DebugInfo + ")"
	}
	return msg
}

// IsInvalidToken checks if the service rejected the token
func (e *RemoteError) IsInvalidToken() bool {
	return e.ErrorCode == "invalidtoken"
}

// IsAccessDenied checks if the token lacks access to the function
func (e *RemoteError) IsAccessDenied() bool {
	return e.ErrorCode == "accessexception" || e.Exception == "webservice_access_exception"
}
