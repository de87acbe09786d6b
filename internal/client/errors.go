package client

import (
	"errors"
	"fmt"
)

// ErrIncompatibleServer is returned when the manager's reported version is
// older than the minimum this client supports.
var ErrIncompatibleServer = errors.New("incompatible manager version")

// APIError is a non-2xx response from the manager API.
type APIError struct {
	// Status is the HTTP status code.
	Status int

	// Type is the machine-readable error class reported by the manager,
	// when present.
	Type string

	// Message is the human-readable detail.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("manager API error (HTTP %d)", e.Status)
	}
	if e.Type != "" {
		return fmt.Sprintf("manager API error (HTTP %d, %s): %s", e.Status, e.Type, e.Message)
	}
	return fmt.Sprintf("manager API error (HTTP %d): %s", e.Status, e.Message)
}
