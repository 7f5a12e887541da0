// Package util provides utility functions and common error types.
package util

import (
	"errors"
	"fmt"
)

// Sentinel errors for precondition failures
var (
	ErrNoCredentials  = errors.New("no credentials available")
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidProfile = errors.New("invalid profile")
	ErrLoginRejected  = errors.New("login rejected")
	ErrRequestFailed  = errors.New("request failed")
)

// RequestError carries the method, URL, and status of a failed API call
type RequestError struct {
	Method string
	URL    string
	Status int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.Status)
}

func (e *RequestError) Unwrap() error {
	return ErrRequestFailed
}

// NewRequestError creates a request error
func NewRequestError(method, url string, status int) *RequestError {
	return &RequestError{Method: method, URL: url, Status: status}
}

// LoginError records which login paths a backend rejected
type LoginError struct {
	Backend string
	Paths   []string
}

func (e *LoginError) Error() string {
	if len(e.Paths) == 1 {
		return fmt.Sprintf("%s rejected login at %s", e.Backend, e.Paths[0])
	}
	return fmt.Sprintf("%s rejected login at %d paths", e.Backend, len(e.Paths))
}

func (e *LoginError) Unwrap() error {
	return ErrLoginRejected
}

// NewLoginError creates a login error
func NewLoginError(backend string, paths ...string) *LoginError {
	return &LoginError{Backend: backend, Paths: paths}
}
