package ups

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/parcelbridge/logistic/pkg/carrier"
)

const (
	testURL = "https://wwwcie.ups.com"
	liveURL = "https://www.ups.com"
)

// Request endpoints under the test or live base URL.
const (
	resourceRates           = "ups.app/xml/Rate"
	resourceTrack           = "ups.app/xml/Track"
	resourceShipmentConfirm = "ups.app/xml/ShipConfirm"
	resourceShipmentAccept  = "ups.app/xml/ShipAccept"
)

func baseURL(test bool) string {
	if test {
		return testURL
	}
	return liveURL
}

// Poster posts an XML request body and returns the raw response body.
// This abstraction allows for mock implementations during testing and the
// HTTP implementation in production.
type Poster interface {
	Post(ctx context.Context, url string, body []byte) ([]byte, error)
}

// HTTPPoster is the production Poster backed by net/http.
type HTTPPoster struct {
	httpClient *http.Client
}

// HTTPPosterConfig holds configuration for the HTTP poster.
type HTTPPosterConfig struct {
	Timeout time.Duration
}

// NewHTTPPoster creates a new HTTP-based poster for production use.
func NewHTTPPoster(cfg HTTPPosterConfig) *HTTPPoster {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPPoster{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Post sends the body and returns the raw response. Any network failure or
// non-2xx status is a transport error.
func (p *HTTPPoster) Post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/xml")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, carrier.NewCarrierError(carrierName, "TRANSPORT", "request failed").
			WithCause(err).
			WithRetryable(true)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, carrier.NewCarrierError(carrierName, "TRANSPORT", "failed to read response").
			WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, carrier.NewCarrierError(carrierName, fmt.Sprintf("HTTP_%d", resp.StatusCode), "unexpected status").
			WithStatusCode(resp.StatusCode).
			WithRetryable(resp.StatusCode >= 500)
	}

	return raw, nil
}

var _ Poster = (*HTTPPoster)(nil)
