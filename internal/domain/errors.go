package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup by id finds nothing
	ErrNotFound = errors.New("event not found")
	// ErrNotDevMode is returned by dev-only operations on a remote backing
	ErrNotDevMode = errors.New("operation only available in dev mode")
	// ErrUnauthenticated is returned when no user is signed in
	ErrUnauthenticated = errors.New("not signed in")
)

// ValidationError marks a request the caller has to fix
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func ErrValidation(msg string) error {
	return &ValidationError{Msg: msg}
}

// StoreError is a transport or permission failure of the document store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// AuthError is a rejected credential or a failed sign-out.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("auth: %s: %v", e.Op, e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// BlobError is a failed image upload or delete.
type BlobError struct {
	Op  string
	Err error
}

func (e *BlobError) Error() string { return fmt.Sprintf("blob: %s: %v", e.Op, e.Err) }
func (e *BlobError) Unwrap() error { return e.Err }
