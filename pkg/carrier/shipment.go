package carrier

// ShipmentState is the terminal state of a label purchase.
type ShipmentState string

const (
	// ShipmentPending is the initial state before the confirm step.
	ShipmentPending ShipmentState = "pending"
	// ShipmentConfirmed means the carrier quoted and locked a price but
	// the purchase was not (yet) committed.
	ShipmentConfirmed ShipmentState = "confirmed"
	// ShipmentAccepted means the purchase committed: price, tracking
	// number and labels are populated.
	ShipmentAccepted ShipmentState = "accepted"
	// ShipmentRejected means the quoted price exceeded the caller's
	// tolerance; the purchase stopped after the quote. Not an error.
	ShipmentRejected ShipmentState = "rejected"
	// ShipmentFailed means the carrier reported an error; Errors holds
	// its message.
	ShipmentFailed ShipmentState = "failed"
)

// Shipment is the result of a label purchase. Instances are exclusively
// owned by the call that created them, along with their Packages and
// Labels.
type Shipment struct {
	Shipper     *Location
	Payer       *Location
	Origin      *Location
	Destination *Location
	Packages    []Package

	// Number is the caller's shipment reference, echoed to the carrier.
	Number      string
	ServiceCode string

	State          ShipmentState
	Price          *Money
	TrackingNumber string
	Labels         []Label

	// Errors holds the carrier's message when State is ShipmentFailed.
	Errors string
}

// Accepted reports whether the purchase committed.
func (s *Shipment) Accepted() bool {
	return s.State == ShipmentAccepted
}
