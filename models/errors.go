package models

import (
	"errors"
	"fmt"
)

// The error taxonomy shared by repositories, services and API handlers.
// Validation and domain errors are returned as typed values so handlers can
// map them to status codes with errors.As; only LedgerUnavailableError is
// retryable, and only by the caller.

// ValidationError reports the first malformed field of a publish or pay
// request. Never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on field '%s': %s", e.Field, e.Reason)
}

// NotFoundError reports a reference to an article or author that does not
// exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// InsufficientPaymentError reports a tendered value below the article price.
// The caller may retry with a larger value.
type InsufficientPaymentError struct {
	Required uint64
	Tendered uint64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: tendered %d, price is %d", e.Tendered, e.Required)
}

// NoFundsError reports a withdrawal attempted with a zero balance.
type NoFundsError struct {
	Author string
}

func (e *NoFundsError) Error() string {
	return fmt.Sprintf("no withdrawable earnings for author %s", e.Author)
}

// LedgerUnavailableError wraps a ledger failure or timeout. The underlying
// operation may still have landed; callers must re-query state (HasPaid,
// Balance) before retrying a mutating call.
type LedgerUnavailableError struct {
	Op  string
	Err error
}

func (e *LedgerUnavailableError) Error() string {
	return fmt.Sprintf("ledger unavailable during %s: %v", e.Op, e.Err)
}

func (e *LedgerUnavailableError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
