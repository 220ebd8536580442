package ups

import (
	"context"
	"strings"

	"github.com/parcelbridge/logistic/pkg/carrier"
)

// Canned responses served by the mock poster. The label image decodes to a
// GIF header.
const (
	mockRateResponse = `<?xml version="1.0"?><RatingServiceSelectionResponse><Response><TransactionReference><XpciVersion>1.0</XpciVersion></TransactionReference><ResponseStatusCode>1</ResponseStatusCode><ResponseStatusDescription>Success</ResponseStatusDescription></Response><RatedShipment><Service><Code>03</Code></Service><RatedShipmentWarning>Your invoice may vary from the displayed reference rates</RatedShipmentWarning><BillingWeight><UnitOfMeasurement><Code>LBS</Code></UnitOfMeasurement><Weight>2.0</Weight></BillingWeight><TransportationCharges><CurrencyCode>USD</CurrencyCode><MonetaryValue>12.65</MonetaryValue></TransportationCharges><ServiceOptionsCharges><CurrencyCode>USD</CurrencyCode><MonetaryValue>0.00</MonetaryValue></ServiceOptionsCharges><TotalCharges><CurrencyCode>USD</CurrencyCode><MonetaryValue>12.65</MonetaryValue></TotalCharges><GuaranteedDaysToDelivery></GuaranteedDaysToDelivery><ScheduledDeliveryTime></ScheduledDeliveryTime></RatedShipment><RatedShipment><Service><Code>02</Code></Service><TotalCharges><CurrencyCode>USD</CurrencyCode><MonetaryValue>25.80</MonetaryValue></TotalCharges></RatedShipment><RatedShipment><Service><Code>01</Code></Service><TotalCharges><CurrencyCode>USD</CurrencyCode><MonetaryValue>44.30</MonetaryValue></TotalCharges></RatedShipment></RatingServiceSelectionResponse>`

	mockTrackResponse = `<?xml version="1.0"?><TrackResponse><Response><ResponseStatusCode>1</ResponseStatusCode><ResponseStatusDescription>Success</ResponseStatusDescription></Response><Shipment><Shipper><ShipperNumber>12345E</ShipperNumber><Address><City>Atlanta</City><StateProvinceCode>GA</StateProvinceCode><PostalCode>30340</PostalCode><CountryCode>US</CountryCode></Address></Shipper><ShipTo><Address><City>Dallas</City><StateProvinceCode>TX</StateProvinceCode><PostalCode>75201</PostalCode><CountryCode>US</CountryCode></Address></ShipTo><ShipmentIdentificationNumber>1Z12345E0291980793</ShipmentIdentificationNumber><Package><TrackingNumber>1Z12345E0291980793</TrackingNumber><Activity><ActivityLocation><Address><City>Louisville</City><StateProvinceCode>KY</StateProvinceCode><CountryCode>US</CountryCode></Address></ActivityLocation><Status><StatusType><Code>I</Code><Description>ARRIVAL SCAN</Description></StatusType></Status><Date>20240116</Date><Time>043500</Time></Activity><Activity><ActivityLocation><Address><City>Dallas</City><StateProvinceCode>TX</StateProvinceCode><CountryCode>US</CountryCode></Address></ActivityLocation><Status><StatusType><Code>D</Code><Description>DELIVERED</Description></StatusType></Status><Date>20240117</Date><Time>115500</Time></Activity></Package></Shipment></TrackResponse>`

	mockConfirmResponse = `<?xml version="1.0"?><ShipmentConfirmResponse><Response><ResponseStatusCode>1</ResponseStatusCode><ResponseStatusDescription>Success</ResponseStatusDescription></Response><ShipmentCharges><TransportationCharges><CurrencyCode>USD</CurrencyCode><MonetaryValue>10.30</MonetaryValue></TransportationCharges><ServiceOptionsCharges><CurrencyCode>USD</CurrencyCode><MonetaryValue>0.00</MonetaryValue></ServiceOptionsCharges><TotalCharges><CurrencyCode>USD</CurrencyCode><MonetaryValue>10.30</MonetaryValue></TotalCharges></ShipmentCharges><BillingWeight><UnitOfMeasurement><Code>LBS</Code></UnitOfMeasurement><Weight>2.0</Weight></BillingWeight><ShipmentIdentificationNumber>1Z2220060290602143</ShipmentIdentificationNumber><ShipmentDigest>rO0ABXNyACBjb20udXBzLmVjaXMuY29yZS5zaGlwbWVudHM=</ShipmentDigest></ShipmentConfirmResponse>`

	mockAcceptResponse = `<?xml version="1.0"?><ShipmentAcceptResponse><Response><ResponseStatusCode>1</ResponseStatusCode><ResponseStatusDescription>Success</ResponseStatusDescription></Response><ShipmentResults><ShipmentCharges><TransportationCharges><CurrencyCode>USD</CurrencyCode><MonetaryValue>10.30</MonetaryValue></TransportationCharges><ServiceOptionsCharges><CurrencyCode>USD</CurrencyCode><MonetaryValue>0.00</MonetaryValue></ServiceOptionsCharges><TotalCharges><CurrencyCode>USD</CurrencyCode><MonetaryValue>10.30</MonetaryValue></TotalCharges></ShipmentCharges><BillingWeight><UnitOfMeasurement><Code>LBS</Code></UnitOfMeasurement><Weight>2.0</Weight></BillingWeight><ShipmentIdentificationNumber>1Z2220060290602143</ShipmentIdentificationNumber><PackageResults><TrackingNumber>1Z2220060291994175</TrackingNumber><ServiceOptionsCharges><CurrencyCode>USD</CurrencyCode><MonetaryValue>0.00</MonetaryValue></ServiceOptionsCharges><LabelImage><LabelImageFormat><Code>GIF</Code></LabelImageFormat><GraphicImage>R0lGODlh</GraphicImage></LabelImage></PackageResults></ShipmentResults></ShipmentAcceptResponse>`
)

// MockPoster is a mock implementation of Poster for testing. Without an
// OnPost hook it serves canned success responses keyed by the request
// resource.
type MockPoster struct {
	SimulateErrors bool

	OnPost func(ctx context.Context, url string, body []byte) ([]byte, error)

	// Requests records every posted body, in order.
	Requests [][]byte
}

// NewMockPoster creates a new mock poster with default behavior.
func NewMockPoster() *MockPoster {
	return &MockPoster{}
}

// Post returns a canned response for the endpoint named in the URL.
func (m *MockPoster) Post(ctx context.Context, url string, body []byte) ([]byte, error) {
	m.Requests = append(m.Requests, body)

	if m.SimulateErrors {
		return nil, carrier.NewCarrierError(carrierName, "MOCK_ERROR", "simulated transport error").
			WithRetryable(true)
	}

	if m.OnPost != nil {
		return m.OnPost(ctx, url, body)
	}

	switch {
	case strings.HasSuffix(url, resourceRates):
		return []byte(mockRateResponse), nil
	case strings.HasSuffix(url, resourceTrack):
		return []byte(mockTrackResponse), nil
	case strings.HasSuffix(url, resourceShipmentConfirm):
		return []byte(mockConfirmResponse), nil
	case strings.HasSuffix(url, resourceShipmentAccept):
		return []byte(mockAcceptResponse), nil
	}
	return nil, carrier.NewCarrierError(carrierName, "MOCK_ERROR", "no canned response for "+url)
}

var _ Poster = (*MockPoster)(nil)
