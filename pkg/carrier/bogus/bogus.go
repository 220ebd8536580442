// Package bogus provides an in-memory test carrier. It answers every
// operation with canned data and never touches the network, which makes it
// useful for exercising layers above the carrier interface.
package bogus

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/parcelbridge/logistic/pkg/carrier"
)

const carrierName = "bogus"

// Carrier is the bogus test carrier.
type Carrier struct{}

// New creates a new bogus carrier.
func New() *Carrier {
	return &Carrier{}
}

// Name returns the carrier name.
func (c *Carrier) Name() string {
	return carrierName
}

// Requirements returns no credential fields; the bogus carrier needs none.
func (c *Carrier) Requirements() []string {
	return nil
}

// FindRates returns a single canned rate.
func (c *Carrier) FindRates(ctx context.Context, origin, destination *carrier.Location, packages []carrier.Package, opts *carrier.Options) (*carrier.RateResponse, error) {
	return &carrier.RateResponse{
		Success: true,
		Rates: []carrier.RateEstimate{
			{
				Carrier:     carrierName,
				ServiceCode: "01",
				ServiceName: "Carrier Pigeon",
				TotalPrice:  carrier.NewMoney(523, "USD"),
				Packages:    packages,
			},
		},
	}, nil
}

// FindTrackingInfo reports every shipment as just delivered.
func (c *Carrier) FindTrackingInfo(ctx context.Context, trackingNumber string, opts *carrier.Options) (*carrier.TrackingResponse, error) {
	now := time.Now().UTC()
	return &carrier.TrackingResponse{
		Success:        true,
		TrackingNumber: trackingNumber,
		Events: []carrier.ShipmentEvent{
			{Description: "Delivered", Timestamp: &now},
		},
	}, nil
}

// BuyShippingLabels issues a fresh tracking number and one empty label per
// package.
func (c *Carrier) BuyShippingLabels(ctx context.Context, shipper, origin, destination *carrier.Location, packages []carrier.Package, opts *carrier.Options) (*carrier.Shipment, error) {
	tracking := fmt.Sprintf("%09d", time.Now().UnixNano()%1_000_000_000)
	price := carrier.NewMoney(523, "USD")

	labels := make([]carrier.Label, len(packages))
	for i := range packages {
		labels[i] = carrier.Label{TrackingNumber: tracking}
	}

	payer := shipper
	if opts != nil && opts.Payer != nil {
		payer = opts.Payer
	}

	return &carrier.Shipment{
		Shipper:        shipper,
		Payer:          payer,
		Origin:         origin,
		Destination:    destination,
		Packages:       packages,
		Number:         "bogus-ship-" + uuid.New().String()[:8],
		State:          carrier.ShipmentAccepted,
		Price:          &price,
		TrackingNumber: tracking,
		Labels:         labels,
	}, nil
}

var _ carrier.Carrier = (*Carrier)(nil)
