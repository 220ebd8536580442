package ups

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/parcelbridge/logistic/pkg/carrier"
)

// confirmation is the intermediate result of a successful confirm step:
// the locked price and the opaque digest binding it to the accept request.
// Keeping it a separate type means an accept can only ever be built from a
// completed confirm.
type confirmation struct {
	price  carrier.Money
	digest string
}

// acceptance is the intermediate result of a successful accept step.
type acceptance struct {
	price    carrier.Money
	tracking string
	labels   []carrier.Label
}

func parseRateResponse(origin *carrier.Location, packages []carrier.Package, raw []byte) (*carrier.RateResponse, error) {
	var resp rateResponse
	if err := xml.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding rate response: %v", carrier.ErrMalformedResponse, err)
	}

	result := &carrier.RateResponse{
		Success: resp.Response.ok(),
		Message: resp.Response.message(),
		Raw:     string(raw),
	}
	if !result.Success {
		return result, nil
	}

	// A success with no rated shipments is an empty quote set, not an
	// error.
	for _, rs := range resp.RatedShipments {
		price, err := carrier.ParseMoney(rs.TotalCharges.MonetaryValue, rs.TotalCharges.CurrencyCode)
		if err != nil {
			return nil, fmt.Errorf("%w: rated shipment charges: %v", carrier.ErrMalformedResponse, err)
		}
		result.Rates = append(result.Rates, carrier.RateEstimate{
			Carrier:     carrierName,
			ServiceCode: rs.Service.Code,
			ServiceName: serviceNameFor(origin.CountryCode(), rs.Service.Code),
			TotalPrice:  price,
			Packages:    packages,
		})
	}
	return result, nil
}

func parseTrackingResponse(raw []byte) (*carrier.TrackingResponse, error) {
	var resp trackResponse
	if err := xml.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding tracking response: %v", carrier.ErrMalformedResponse, err)
	}

	result := &carrier.TrackingResponse{
		Success: resp.Response.ok(),
		Message: resp.Response.message(),
		Raw:     string(raw),
	}
	if !result.Success {
		return result, nil
	}

	// Success without a shipment node means the response is unparseable
	// for this request, not a business failure.
	shipment := resp.Shipment
	if shipment == nil {
		return nil, fmt.Errorf("%w: tracking response has no shipment node", carrier.ErrMalformedResponse)
	}

	result.TrackingNumber = shipment.ShipmentIdentificationNumber
	if result.TrackingNumber == "" && len(shipment.Packages) > 0 {
		result.TrackingNumber = shipment.Packages[0].TrackingNumber
	}

	if shipment.Shipper != nil {
		result.Origin = shipment.Shipper.Address.location()
	}
	if shipment.ShipTo != nil {
		result.Destination = shipment.ShipTo.Address.location()
	}

	if len(shipment.Packages) > 0 {
		result.Events = normalizeEvents(shipment.Packages[0].Activities, result.Origin, result.Destination)
	}
	return result, nil
}

// normalizeEvents converts raw activities into ordered ShipmentEvents and
// applies the origin and destination merge heuristics.
func normalizeEvents(activities []trackActivity, origin, destination *carrier.Location) []carrier.ShipmentEvent {
	if len(activities) == 0 {
		return nil
	}

	events := make([]carrier.ShipmentEvent, 0, len(activities))
	for _, a := range activities {
		var loc *carrier.Location
		if a.Location != nil {
			loc = a.Location.Address.location()
		}
		events = append(events, carrier.ShipmentEvent{
			Description: a.Status.StatusType.Description,
			Timestamp:   parseActivityTime(a.Date, a.Time),
			Location:    loc,
		})
	}

	// Timestamped events sort ascending. Events without a timestamp are
	// not comparable and keep their reported position, so only the
	// timestamped subsequence is reordered around them.
	timed := make([]int, 0, len(events))
	for i, e := range events {
		if e.Timestamp != nil {
			timed = append(timed, i)
		}
	}
	ordered := make([]carrier.ShipmentEvent, len(timed))
	for j, i := range timed {
		ordered[j] = events[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(*ordered[j].Timestamp)
	})
	for j, i := range timed {
		events[i] = ordered[j]
	}

	if origin != nil {
		first := events[0]
		sameCountry := first.Location != nil && first.Location.CountryCode() == origin.CountryCode()
		sameOrBlankCity := first.Location != nil && (first.Location.City == "" || first.Location.City == origin.City)
		originEvent := carrier.ShipmentEvent{
			Description: first.Description,
			Timestamp:   first.Timestamp,
			Location:    origin,
		}
		if sameCountry && sameOrBlankCity {
			events[0] = originEvent
		} else {
			// The first reported event happened away from the origin;
			// keep it and prepend the origin instead of overwriting.
			events = append([]carrier.ShipmentEvent{originEvent}, events...)
		}
	}

	// Carriers often omit or mis-report the final delivery address.
	if last := len(events) - 1; strings.EqualFold(events[last].Description, "delivered") {
		events[last].Location = destination
	}
	return events
}

// parseActivityTime reconstructs a UTC timestamp from the separate
// YYYYMMDD date and HHMMSS time fields. Either one missing means the
// event has no timestamp.
func parseActivityTime(date, clock string) *time.Time {
	if date == "" || clock == "" {
		return nil
	}
	t, err := time.ParseInLocation("20060102150405", date+clock, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// parseShipmentConfirm returns the confirmation on success, or the
// carrier's message on a business failure.
func parseShipmentConfirm(raw []byte) (*confirmation, string, error) {
	var resp shipmentConfirmResponse
	if err := xml.Unmarshal(raw, &resp); err != nil {
		return nil, "", fmt.Errorf("%w: decoding confirm response: %v", carrier.ErrMalformedResponse, err)
	}

	if !resp.Response.ok() {
		return nil, resp.Response.message(), nil
	}
	if resp.ShipmentCharges == nil || resp.ShipmentDigest == "" {
		return nil, "", fmt.Errorf("%w: confirm response missing charges or digest", carrier.ErrMalformedResponse)
	}

	price, err := carrier.ParseMoney(resp.ShipmentCharges.TotalCharges.MonetaryValue, resp.ShipmentCharges.TotalCharges.CurrencyCode)
	if err != nil {
		return nil, "", fmt.Errorf("%w: confirm response charges: %v", carrier.ErrMalformedResponse, err)
	}

	return &confirmation{price: price, digest: resp.ShipmentDigest}, "", nil
}

// parseShipmentAccept returns the acceptance on success, or the carrier's
// message on a business failure.
func parseShipmentAccept(raw []byte) (*acceptance, string, error) {
	var resp shipmentAcceptResponse
	if err := xml.Unmarshal(raw, &resp); err != nil {
		return nil, "", fmt.Errorf("%w: decoding accept response: %v", carrier.ErrMalformedResponse, err)
	}

	if !resp.Response.ok() {
		return nil, resp.Response.message(), nil
	}
	results := resp.Results
	if results == nil || results.ShipmentCharges == nil {
		return nil, "", fmt.Errorf("%w: accept response missing shipment results", carrier.ErrMalformedResponse)
	}

	price, err := carrier.ParseMoney(results.ShipmentCharges.TotalCharges.MonetaryValue, results.ShipmentCharges.TotalCharges.CurrencyCode)
	if err != nil {
		return nil, "", fmt.Errorf("%w: accept response charges: %v", carrier.ErrMalformedResponse, err)
	}

	acc := &acceptance{
		price:    price,
		tracking: results.ShipmentIdentificationNumber,
	}
	for _, pr := range results.PackageResults {
		image, err := base64.StdEncoding.DecodeString(pr.LabelImage.GraphicImage)
		if err != nil {
			return nil, "", fmt.Errorf("%w: decoding label image: %v", carrier.ErrMalformedResponse, err)
		}
		acc.labels = append(acc.labels, carrier.Label{
			TrackingNumber: pr.TrackingNumber,
			Image:          image,
		})
	}
	return acc, "", nil
}
