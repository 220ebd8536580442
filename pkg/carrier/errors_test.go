package carrier_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/parcelbridge/logistic/pkg/carrier"
	"github.com/stretchr/testify/assert"
)

func TestCarrierError_Error(t *testing.T) {
	err := carrier.NewCarrierError("ups", "TRANSPORT", "connection refused")
	assert.Equal(t, "ups error (TRANSPORT): connection refused", err.Error())
}

func TestCarrierError_ErrorWithCause(t *testing.T) {
	cause := errors.New("network timeout")
	err := carrier.NewCarrierError("ups", "TRANSPORT", "request failed").WithCause(cause)
	assert.Contains(t, err.Error(), "request failed")
	assert.Contains(t, err.Error(), "network timeout")
}

func TestCarrierError_Unwrap(t *testing.T) {
	cause := errors.New("network timeout")
	err := carrier.NewCarrierError("ups", "TRANSPORT", "request failed").WithCause(cause)
	assert.True(t, errors.Is(err, cause))
}

func TestCarrierError_Is(t *testing.T) {
	err1 := carrier.NewCarrierError("ups", "MALFORMED", "missing shipment node")
	err2 := carrier.NewCarrierError("bogus", "MALFORMED", "different message")

	// Same code should match
	assert.True(t, errors.Is(err1, err2))
}

func TestCarrierError_IsNot(t *testing.T) {
	err1 := carrier.NewCarrierError("ups", "MALFORMED", "missing shipment node")
	err2 := carrier.NewCarrierError("ups", "TRANSPORT", "connection refused")

	assert.False(t, errors.Is(err1, err2))
}

func TestCarrierError_WithStatusCode(t *testing.T) {
	err := carrier.NewCarrierError("ups", "TRANSPORT", "unauthorized").WithStatusCode(401)
	assert.Equal(t, 401, err.StatusCode)
}

func TestIsRetryable_CarrierError(t *testing.T) {
	err := carrier.NewCarrierError("ups", "TRANSPORT", "timeout").WithRetryable(true)
	assert.True(t, carrier.IsRetryable(err))

	err = carrier.NewCarrierError("ups", "MALFORMED", "bad schema").WithRetryable(false)
	assert.False(t, carrier.IsRetryable(err))
}

func TestIsRetryable_ServiceUnavailable(t *testing.T) {
	assert.True(t, carrier.IsRetryable(carrier.ErrServiceUnavailable))
}

func TestIsRetryable_AcceptOutcomeUnknown(t *testing.T) {
	// An ambiguous accept failure may have committed a real charge and
	// must never be retried blindly, even when wrapped.
	assert.False(t, carrier.IsRetryable(carrier.ErrAcceptOutcomeUnknown))

	wrapped := fmt.Errorf("buying labels: %w", carrier.ErrAcceptOutcomeUnknown)
	assert.False(t, carrier.IsRetryable(wrapped))
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrCarrierNotFound", carrier.ErrCarrierNotFound},
		{"ErrMalformedResponse", carrier.ErrMalformedResponse},
		{"ErrMissingCredentials", carrier.ErrMissingCredentials},
		{"ErrServiceUnavailable", carrier.ErrServiceUnavailable},
		{"ErrAcceptOutcomeUnknown", carrier.ErrAcceptOutcomeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}
