package ups

import (
	"github.com/parcelbridge/logistic/pkg/carrier"
)

// Typed response structures for the UPS XML API. Optional subtrees are
// pointers so that "absent" is distinguishable from "empty"; parsing code
// decides which absences are business failures and which are schema
// mismatches.

// responseStatus is the common /*/Response block.
type responseStatus struct {
	StatusCode        string         `xml:"ResponseStatusCode"`
	StatusDescription string         `xml:"ResponseStatusDescription"`
	Error             *responseError `xml:"Error"`
}

type responseError struct {
	Severity    string `xml:"ErrorSeverity"`
	Code        string `xml:"ErrorCode"`
	Description string `xml:"ErrorDescription"`
}

// ok reports the fixed success sentinel.
func (r responseStatus) ok() bool {
	return r.StatusCode == "1"
}

// message returns the human-readable status, preferring the status
// description over the error description.
func (r responseStatus) message() string {
	if r.StatusDescription != "" {
		return r.StatusDescription
	}
	if r.Error != nil {
		return r.Error.Description
	}
	return ""
}

type charges struct {
	CurrencyCode  string `xml:"CurrencyCode"`
	MonetaryValue string `xml:"MonetaryValue"`
}

type rateResponse struct {
	Response       responseStatus  `xml:"Response"`
	RatedShipments []ratedShipment `xml:"RatedShipment"`
}

type ratedShipment struct {
	Service struct {
		Code string `xml:"Code"`
	} `xml:"Service"`
	TotalCharges charges `xml:"TotalCharges"`
}

type trackResponse struct {
	Response responseStatus `xml:"Response"`
	Shipment *trackShipment `xml:"Shipment"`
}

type trackShipment struct {
	ShipmentIdentificationNumber string         `xml:"ShipmentIdentificationNumber"`
	Shipper                      *addressHolder `xml:"Shipper"`
	ShipTo                       *addressHolder `xml:"ShipTo"`
	Packages                     []trackPackage `xml:"Package"`
}

type addressHolder struct {
	Address *wireAddress `xml:"Address"`
}

type wireAddress struct {
	AddressLine1      string `xml:"AddressLine1"`
	AddressLine2      string `xml:"AddressLine2"`
	AddressLine3      string `xml:"AddressLine3"`
	City              string `xml:"City"`
	StateProvinceCode string `xml:"StateProvinceCode"`
	PostalCode        string `xml:"PostalCode"`
	CountryCode       string `xml:"CountryCode"`
}

// location converts a wire address into the shared domain Location.
func (a *wireAddress) location() *carrier.Location {
	if a == nil {
		return nil
	}
	return &carrier.Location{
		Address1:   a.AddressLine1,
		Address2:   a.AddressLine2,
		Address3:   a.AddressLine3,
		City:       a.City,
		Province:   a.StateProvinceCode,
		PostalCode: a.PostalCode,
		Country:    a.CountryCode,
	}
}

type trackPackage struct {
	TrackingNumber string          `xml:"TrackingNumber"`
	Activities     []trackActivity `xml:"Activity"`
}

type trackActivity struct {
	Status struct {
		StatusType struct {
			Code        string `xml:"Code"`
			Description string `xml:"Description"`
		} `xml:"StatusType"`
	} `xml:"Status"`
	Location *struct {
		Address *wireAddress `xml:"Address"`
	} `xml:"ActivityLocation"`
	Date string `xml:"Date"`
	Time string `xml:"Time"`
}

type shipmentConfirmResponse struct {
	Response        responseStatus `xml:"Response"`
	ShipmentCharges *struct {
		TotalCharges charges `xml:"TotalCharges"`
	} `xml:"ShipmentCharges"`
	ShipmentDigest string `xml:"ShipmentDigest"`
}

type shipmentAcceptResponse struct {
	Response responseStatus   `xml:"Response"`
	Results  *shipmentResults `xml:"ShipmentResults"`
}

type shipmentResults struct {
	ShipmentCharges *struct {
		TotalCharges charges `xml:"TotalCharges"`
	} `xml:"ShipmentCharges"`
	ShipmentIdentificationNumber string           `xml:"ShipmentIdentificationNumber"`
	PackageResults               []packageResults `xml:"PackageResults"`
}

type packageResults struct {
	TrackingNumber string `xml:"TrackingNumber"`
	LabelImage     struct {
		GraphicImage string `xml:"GraphicImage"`
	} `xml:"LabelImage"`
}
