package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the HTTP status classes the client distinguishes.
// Callers branch with errors.Is; the wrapped *StatusError keeps the detail.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("request rejected by backend validation")
	ErrUnauthorized = errors.New("authentication required or token expired")
	ErrServer       = errors.New("backend server error")
)

// StatusError carries the HTTP status and the backend's detail message
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// Unwrap maps the status code onto the sentinel taxonomy
func (e *StatusError) Unwrap() error {
	switch {
	case e.Status == 404:
		return ErrNotFound
	case e.Status == 401 || e.Status == 403:
		return ErrUnauthorized
	case e.Status == 400 || e.Status == 422:
		return ErrValidation
	case e.Status >= 500:
		return ErrServer
	}
	return nil
}
