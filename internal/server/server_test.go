package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/parcelbridge/logistic/internal/server"
	"github.com/parcelbridge/logistic/internal/telemetry"
	"github.com/parcelbridge/logistic/pkg/carrier"
	"github.com/parcelbridge/logistic/pkg/carrier/bogus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var (
	metricsOnce sync.Once
	metrics     *telemetry.Metrics
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	// Prometheus collectors register globally, so share one set across
	// tests.
	metricsOnce.Do(func() { metrics = telemetry.NewMetrics() })

	logger := otelzap.New(zap.NewNop())
	registry := carrier.NewRegistry()
	registry.Register(bogus.New())

	return server.New(server.Config{Port: 8080}, registry, logger, metrics).Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

const rateBody = `{
	"carrier": "bogus",
	"origin": {"city": "Atlanta", "province": "GA", "country": "US"},
	"destination": {"city": "Dallas", "province": "TX", "country": "US"},
	"packages": [{"length": 10, "width": 8, "height": 4, "dimensionUnit": "in", "weight": 2, "weightUnit": "lb"}]
}`

func TestServer_Health(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_Carriers(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/carriers", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Carriers []string `json:"carriers"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"bogus"}, resp.Carriers)
}

func TestServer_Rates(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/rates", rateBody)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Rates   []struct {
			Carrier     string `json:"carrier"`
			ServiceName string `json:"serviceName"`
			TotalPrice  struct {
				Amount   string `json:"amount"`
				Currency string `json:"currency"`
			} `json:"totalPrice"`
		} `json:"rates"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Rates, 1)
	assert.Equal(t, "bogus", resp.Rates[0].Carrier)
	assert.Equal(t, "Carrier Pigeon", resp.Rates[0].ServiceName)
	assert.Equal(t, "5.23", resp.Rates[0].TotalPrice.Amount)
	assert.Equal(t, "USD", resp.Rates[0].TotalPrice.Currency)
}

func TestServer_Rates_UnknownCarrier(t *testing.T) {
	handler := newTestHandler(t)

	body := strings.Replace(rateBody, `"bogus"`, `"nonesuch"`, 1)
	rec := doJSON(t, handler, http.MethodPost, "/api/rates", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Rates_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/rates", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_Rates_InvalidJSON(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/rates", "not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp["error"], "invalid JSON")
}

func TestServer_Rates_MissingPackages(t *testing.T) {
	handler := newTestHandler(t)

	body := `{"carrier": "bogus", "origin": {"city": "Atlanta"}, "destination": {"city": "Dallas"}, "packages": []}`
	rec := doJSON(t, handler, http.MethodPost, "/api/rates", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Tracking(t *testing.T) {
	handler := newTestHandler(t)

	body := `{"carrier": "bogus", "trackingNumber": "123456789"}`
	rec := doJSON(t, handler, http.MethodPost, "/api/tracking", body)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success        bool   `json:"success"`
		TrackingNumber string `json:"trackingNumber"`
		Events         []struct {
			Description string `json:"description"`
		} `json:"events"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "123456789", resp.TrackingNumber)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "Delivered", resp.Events[0].Description)
}

func TestServer_Tracking_MissingNumber(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/tracking", `{"carrier": "bogus"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Labels(t *testing.T) {
	handler := newTestHandler(t)

	body := `{
		"carrier": "bogus",
		"shipper": {"name": "Acme", "city": "Atlanta", "country": "US", "commercial": true},
		"origin": {"name": "Acme", "city": "Atlanta", "country": "US", "commercial": true},
		"destination": {"name": "Jane Smith", "city": "Dallas", "country": "US"},
		"packages": [
			{"length": 10, "width": 8, "height": 4, "weight": 2},
			{"length": 5, "width": 5, "height": 5, "weight": 1}
		],
		"options": {"shipmentNumber": "ORDER-7", "expectedPrice": {"amount": "6.00", "currency": "USD"}, "priceEpsilon": {"amount": "1.00", "currency": "USD"}}
	}`
	rec := doJSON(t, handler, http.MethodPost, "/api/labels", body)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Number         string `json:"number"`
		State          string `json:"state"`
		TrackingNumber string `json:"trackingNumber"`
		Price          struct {
			Amount   string `json:"amount"`
			Currency string `json:"currency"`
		} `json:"price"`
		Labels []struct {
			TrackingNumber string `json:"trackingNumber"`
		} `json:"labels"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "accepted", resp.State)
	assert.NotEmpty(t, resp.Number)
	assert.NotEmpty(t, resp.TrackingNumber)
	assert.Equal(t, "5.23", resp.Price.Amount)
	assert.Len(t, resp.Labels, 2)
}

func TestServer_Labels_InvalidExpectedPrice(t *testing.T) {
	handler := newTestHandler(t)

	body := `{
		"carrier": "bogus",
		"shipper": {"name": "Acme"},
		"origin": {"name": "Acme"},
		"destination": {"name": "Jane"},
		"packages": [{"weight": 1}],
		"options": {"expectedPrice": {"amount": "not-a-number", "currency": "USD"}}
	}`
	rec := doJSON(t, handler, http.MethodPost, "/api/labels", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp["error"], "expectedPrice")
}

func TestServer_Labels_MissingShipper(t *testing.T) {
	handler := newTestHandler(t)

	body := `{"carrier": "bogus", "origin": {"name": "Acme"}, "destination": {"name": "Jane"}, "packages": [{"weight": 1}]}`
	rec := doJSON(t, handler, http.MethodPost, "/api/labels", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
