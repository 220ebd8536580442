package carrier

import (
	"errors"
	"fmt"
)

// CarrierError represents a fatal error from a shipping carrier exchange:
// a transport failure or an unparseable response. Business failures are
// not errors; see the Carrier interface.
type CarrierError struct {
	Carrier    string
	Code       string
	Message    string
	StatusCode int
	Retryable  bool
	Cause      error
}

// Error implements the error interface.
func (e *CarrierError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Carrier, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Carrier, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *CarrierError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for CarrierError.
func (e *CarrierError) Is(target error) bool {
	t, ok := target.(*CarrierError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewCarrierError creates a new CarrierError.
func NewCarrierError(carrier, code, message string) *CarrierError {
	return &CarrierError{
		Carrier: carrier,
		Code:    code,
		Message: message,
	}
}

// WithCause adds a cause to the error.
func (e *CarrierError) WithCause(err error) *CarrierError {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *CarrierError) WithStatusCode(code int) *CarrierError {
	e.StatusCode = code
	return e
}

// WithRetryable marks the error as retryable.
func (e *CarrierError) WithRetryable(retryable bool) *CarrierError {
	e.Retryable = retryable
	return e
}

// Sentinel errors for common carrier scenarios.
var (
	// ErrCarrierNotFound indicates the requested carrier is not registered.
	ErrCarrierNotFound = errors.New("carrier not found")

	// ErrMalformedResponse indicates the carrier reported success but the
	// response is missing structure the schema requires. This is a
	// parser/schema mismatch, never a business condition, and is not
	// swallowed into an empty result.
	ErrMalformedResponse = errors.New("malformed carrier response")

	// ErrMissingCredentials indicates a required credential option is
	// absent.
	ErrMissingCredentials = errors.New("missing carrier credentials")

	// ErrServiceUnavailable indicates the carrier service is temporarily
	// unavailable.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrAcceptOutcomeUnknown indicates the accept step of a label
	// purchase failed ambiguously: the carrier may already have committed
	// a charge, so the call must not be retried without caller
	// confirmation.
	ErrAcceptOutcomeUnknown = errors.New("label purchase outcome unknown")
)

// IsRetryable returns true if the error may be retried blindly. Rate and
// tracking lookups are read-only and safe to retry on transport failure;
// an ambiguous accept failure never is.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrAcceptOutcomeUnknown) {
		return false
	}
	var carrierErr *CarrierError
	if errors.As(err, &carrierErr) {
		return carrierErr.Retryable
	}
	return errors.Is(err, ErrServiceUnavailable)
}
