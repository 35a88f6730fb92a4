package anilist

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the AniList client.
var (
	// ErrUnsupportedMode is returned when constructing a transport with an
	// unknown decode mode.
	ErrUnsupportedMode = errors.New("unsupported transport mode")

	// ErrNilTransport is returned when WithTransport is given a nil value.
	// A nil injection is a caller bug, not a request for the default.
	ErrNilTransport = errors.New("nil transport supplied")

	// ErrNotFound is returned when the requested media or user does not
	// exist, or a paged search matched nothing.
	ErrNotFound = errors.New("not found")
)

// ServiceError represents an error entry returned by the AniList API.
type ServiceError struct {
	Message string
	Status  int
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("anilist API error: status %d: %s", e.Status, e.Message)
}

// IsNotFound checks if the error indicates a missing resource.
func (e *ServiceError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// Unwrap exposes ErrNotFound for 404 responses so callers can match with
// errors.Is instead of inspecting status codes.
func (e *ServiceError) Unwrap() error {
	if e.IsNotFound() {
		return ErrNotFound
	}
	return nil
}

// classify maps a single GraphQL error entry onto the package error
// taxonomy. Dispatch only ever classifies the first entry of the array.
func classify(entry QueryError) error {
	return &ServiceError{Message: entry.Message, Status: entry.Status}
}

// errNoResults is the failure for a paged search that matched nothing. The
// service never sends it; the pipeline synthesizes it so that "zero results"
// and a service-level 404 fail identically.
func errNoResults() error {
	return &ServiceError{Message: "Not Found.", Status: http.StatusNotFound}
}
