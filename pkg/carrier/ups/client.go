// Package ups provides integration with the UPS rate, tracking and
// shipping XML API.
package ups

import (
	"context"
	"time"

	"github.com/parcelbridge/logistic/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const carrierName = "ups"

// groundServiceCode is the default service for label purchases.
const groundServiceCode = "03"

// Config holds UPS account configuration. Per-call Options override these
// defaults.
type Config struct {
	Key      string
	Login    string
	Password string

	// AccountNumber is the shipper account used for billing when the
	// shipper location carries none.
	AccountNumber string

	// PickupType names the account's pickup arrangement (e.g.,
	// "daily_pickup", "customer_counter"). Defaults to daily pickup.
	PickupType string

	// Test routes requests to the UPS customer integration environment.
	Test    bool
	UseMock bool
}

// Client is the UPS carrier client.
type Client struct {
	config Config
	poster Poster
	logger *otelzap.Logger
	tracer trace.Tracer
}

// New creates a new UPS client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var poster Poster
	if cfg.UseMock {
		poster = NewMockPoster()
	} else {
		poster = NewHTTPPoster(HTTPPosterConfig{Timeout: 30 * time.Second})
	}

	return &Client{
		config: cfg,
		poster: poster,
		logger: logger,
		tracer: tracer,
	}
}

// NewWithPoster creates a new UPS client with a custom transport.
func NewWithPoster(cfg Config, poster Poster, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config: cfg,
		poster: poster,
		logger: logger,
		tracer: tracer,
	}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// Requirements returns the credential fields UPS needs.
func (c *Client) Requirements() []string {
	return []string{"key", "login", "password"}
}

// FindRates returns quoted UPS service options for the given parcels.
func (c *Client) FindRates(ctx context.Context, origin, destination *carrier.Location, packages []carrier.Package, opts *carrier.Options) (*carrier.RateResponse, error) {
	opts = c.merged(opts)
	c.logger.Info("Getting UPS rates",
		zap.String("origin_country", origin.CountryCode()),
		zap.String("destination_country", destination.CountryCode()),
		zap.Int("package_count", len(packages)),
	)

	body := buildAccessRequest(opts) + buildRateRequest(origin, destination, packages, opts, c.pickupCode())
	raw, err := c.commit(ctx, resourceRates, body, opts)
	if err != nil {
		c.logger.Error("UPS rate request failed", zap.Error(err))
		return nil, err
	}

	return parseRateResponse(origin, packages, raw)
}

// FindTrackingInfo returns the normalized event history for a tracking
// number.
func (c *Client) FindTrackingInfo(ctx context.Context, trackingNumber string, opts *carrier.Options) (*carrier.TrackingResponse, error) {
	opts = c.merged(opts)
	c.logger.Info("Getting UPS tracking info",
		zap.String("tracking_number", trackingNumber),
	)

	body := buildAccessRequest(opts) + buildTrackingRequest(trackingNumber)
	raw, err := c.commit(ctx, resourceTrack, body, opts)
	if err != nil {
		c.logger.Error("UPS tracking request failed", zap.Error(err))
		return nil, err
	}

	return parseTrackingResponse(raw)
}

// BuyShippingLabels runs the two-phase label purchase: a confirm request
// locks a price and returns a digest, an optional price gate checks the
// quote against the caller's tolerance, and an accept request carrying the
// digest commits the purchase. The gate and the ordering are mandatory;
// an accept is never sent after a failed confirm or a rejected quote.
func (c *Client) BuyShippingLabels(ctx context.Context, shipper, origin, destination *carrier.Location, packages []carrier.Package, opts *carrier.Options) (*carrier.Shipment, error) {
	opts = c.merged(opts)

	service := opts.Service
	if service == "" {
		service = groundServiceCode
	}
	payer := opts.Payer
	if payer == nil {
		payer = shipper
	}

	shipment := &carrier.Shipment{
		Shipper:     shipper,
		Payer:       payer,
		Origin:      origin,
		Destination: destination,
		Packages:    packages,
		Number:      opts.ShipmentNumber,
		ServiceCode: service,
		State:       carrier.ShipmentPending,
	}

	c.logger.Info("Confirming UPS shipment",
		zap.String("shipment_number", shipment.Number),
		zap.String("service", service),
		zap.Int("package_count", len(packages)),
	)

	body := buildAccessRequest(opts) + buildShipmentConfirmRequest(shipment, opts)
	raw, err := c.commit(ctx, resourceShipmentConfirm, body, opts)
	if err != nil {
		c.logger.Error("UPS confirm request failed", zap.Error(err))
		return nil, err
	}

	conf, failure, err := parseShipmentConfirm(raw)
	if err != nil {
		return nil, err
	}
	if failure != "" {
		shipment.State = carrier.ShipmentFailed
		shipment.Errors = failure
		return shipment, nil
	}

	shipment.State = carrier.ShipmentConfirmed
	price := conf.price
	shipment.Price = &price

	if !withinTolerance(conf.price, opts.ExpectedPrice, opts.PriceEpsilon) {
		c.logger.Warn("UPS quote exceeds expected price, not purchasing",
			zap.String("quoted", conf.price.String()),
			zap.String("expected", opts.ExpectedPrice.String()),
		)
		shipment.State = carrier.ShipmentRejected
		return shipment, nil
	}

	body = buildAccessRequest(opts) + buildShipmentAcceptRequest(shipment.Number, conf.digest)
	raw, err = c.commit(ctx, resourceShipmentAccept, body, opts)
	if err != nil {
		// The carrier may already have committed the purchase; callers
		// must not retry without confirming the outcome out of band.
		c.logger.Error("UPS accept request failed, outcome unknown", zap.Error(err))
		return nil, carrier.NewCarrierError(carrierName, "ACCEPT_OUTCOME_UNKNOWN", "accept request failed").
			WithCause(carrier.ErrAcceptOutcomeUnknown).
			WithRetryable(false)
	}

	acc, failure, err := parseShipmentAccept(raw)
	if err != nil {
		return nil, err
	}
	if failure != "" {
		shipment.State = carrier.ShipmentFailed
		shipment.Errors = failure
		return shipment, nil
	}

	finalPrice := acc.price
	shipment.State = carrier.ShipmentAccepted
	shipment.Price = &finalPrice
	shipment.TrackingNumber = acc.tracking
	shipment.Labels = acc.labels
	return shipment, nil
}

// withinTolerance applies the price gate: no expected price means no gate,
// otherwise the quote may exceed it by strictly less than epsilon.
func withinTolerance(quoted carrier.Money, expected *carrier.Money, epsilon carrier.Money) bool {
	if expected == nil {
		return true
	}
	return quoted.Cents-expected.Cents < epsilon.Cents
}

func (c *Client) commit(ctx context.Context, resource, body string, opts *carrier.Options) ([]byte, error) {
	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.Start(ctx, "ups."+resource)
		defer span.End()
	}

	url := baseURL(opts.Test || c.config.Test) + "/" + resource
	if opts.LogXML {
		c.logger.Debug("UPS request", zap.String("url", url), zap.String("body", body))
	}
	raw, err := c.poster.Post(ctx, url, []byte(body))
	if err != nil {
		return nil, err
	}
	if opts.LogXML {
		c.logger.Debug("UPS response", zap.String("url", url), zap.ByteString("body", raw))
	}
	return raw, nil
}

// merged overlays per-call options on the configured account defaults.
func (c *Client) merged(opts *carrier.Options) *carrier.Options {
	merged := carrier.Options{}
	if opts != nil {
		merged = *opts
	}
	if merged.Key == "" {
		merged.Key = c.config.Key
	}
	if merged.Login == "" {
		merged.Login = c.config.Login
	}
	if merged.Password == "" {
		merged.Password = c.config.Password
	}
	if merged.OriginAccount == "" {
		merged.OriginAccount = c.config.AccountNumber
	}
	return &merged
}

func (c *Client) pickupCode() string {
	if code, ok := pickupCodes[c.config.PickupType]; ok {
		return code
	}
	return pickupCodes["daily_pickup"]
}

var _ carrier.Carrier = (*Client)(nil)
