// Package carrier provides an abstraction layer for shipping carriers.
package carrier

import (
	"context"
)

// Carrier defines the interface that all shipping carriers must implement.
//
// Carrier-reported business failures (an invalid address, an unserviceable
// route) never surface as Go errors: rate and tracking lookups return a
// result with Success=false and a message, and label purchases return a
// Shipment with a populated Errors field. A non-nil error means the whole
// operation failed at the transport level or the response could not be
// parsed at all.
type Carrier interface {
	// Name returns the carrier identifier (e.g., "ups", "bogus").
	Name() string

	// Requirements lists the credential option fields the carrier needs
	// (e.g., "key", "login", "password"). Declaration only; enforcement
	// belongs to whatever loads the credentials.
	Requirements() []string

	// FindRates returns quoted service options for the given parcels.
	FindRates(ctx context.Context, origin, destination *Location, packages []Package, opts *Options) (*RateResponse, error)

	// FindTrackingInfo returns the normalized event history for a
	// tracking number.
	FindTrackingInfo(ctx context.Context, trackingNumber string, opts *Options) (*TrackingResponse, error)

	// BuyShippingLabels purchases labels for a shipment. The returned
	// Shipment is terminal: it either carries a price, tracking number and
	// one label per package, or a non-empty Errors field. It is never
	// partially labeled.
	BuyShippingLabels(ctx context.Context, shipper, origin, destination *Location, packages []Package, opts *Options) (*Shipment, error)
}

// Options carries per-call credentials and knobs. Carriers merge these over
// their configured defaults; a zero Options is valid.
type Options struct {
	// Credentials, embedded verbatim into every request's access block.
	Key      string
	Login    string
	Password string

	// Account numbers attached to the shipping party and the destination.
	OriginAccount      string
	DestinationAccount string

	// Shipper overrides the shipping party on rate requests; when set and
	// different from the origin, the origin is sent as a separate
	// ship-from party.
	Shipper *Location

	// Payer is billed for a label purchase. Defaults to the shipper.
	Payer *Location

	// ExpectedPrice, when set, gates the label purchase: the quoted price
	// may exceed it by strictly less than PriceEpsilon, otherwise the
	// purchase stops after the quote.
	ExpectedPrice *Money
	PriceEpsilon  Money

	// ShipmentNumber is a caller reference echoed back by the carrier.
	ShipmentNumber string

	// Service is the carrier service code to purchase.
	Service string

	// Test routes requests to the carrier's test endpoint.
	Test bool

	// LogXML logs raw request and response bodies at debug level.
	LogXML bool
}
