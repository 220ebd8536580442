package carrier

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeightUnit represents weight measurement unit.
type WeightUnit string

const (
	WeightKG WeightUnit = "kg"
	WeightLB WeightUnit = "lb"
)

// DimensionUnit represents dimension measurement unit.
type DimensionUnit string

const (
	DimensionCM DimensionUnit = "cm"
	DimensionIN DimensionUnit = "in"
)

// Axis identifies a package dimension.
type Axis string

const (
	AxisLength Axis = "length"
	AxisWidth  Axis = "width"
	AxisHeight Axis = "height"
)

const (
	cmPerInch = 2.54
	kgPerLb   = 0.45359237
)

// Location is a postal address. It is a value: carriers read it but never
// mutate it, and blank fields are omitted from any serialized form.
type Location struct {
	Name       string
	Attention  string
	Phone      string
	Fax        string
	Address1   string
	Address2   string
	Address3   string
	City       string
	Province   string
	PostalCode string
	Country    string // ISO 3166-1 alpha-2, e.g., "CA", "US"

	// AccountNumber is the carrier account or assigned identification
	// number for this party, when it has one.
	AccountNumber string

	// Commercial marks the address as a business. Unset means unknown,
	// and carriers quote the (pricier) residential classification.
	Commercial bool
}

// CountryCode returns the 2-letter upper-case country code.
func (l *Location) CountryCode() string {
	return strings.ToUpper(strings.TrimSpace(l.Country))
}

// Package represents a parcel to be shipped. Unit conversion is the
// package's responsibility; carriers ask for the unit they need.
type Package struct {
	Length        float64
	Width         float64
	Height        float64
	DimensionUnit DimensionUnit
	Weight        float64
	WeightUnit    WeightUnit
	Description   string
}

func (p Package) dimension(a Axis) float64 {
	switch a {
	case AxisWidth:
		return p.Width
	case AxisHeight:
		return p.Height
	default:
		return p.Length
	}
}

// Inches returns the dimension along the given axis in inches.
func (p Package) Inches(a Axis) float64 {
	v := p.dimension(a)
	if p.DimensionUnit == DimensionCM {
		return v / cmPerInch
	}
	return v
}

// Cm returns the dimension along the given axis in centimeters.
func (p Package) Cm(a Axis) float64 {
	v := p.dimension(a)
	if p.DimensionUnit == DimensionCM {
		return v
	}
	return v * cmPerInch
}

// Lbs returns the package weight in pounds.
func (p Package) Lbs() float64 {
	if p.WeightUnit == WeightKG {
		return p.Weight / kgPerLb
	}
	return p.Weight
}

// Kgs returns the package weight in kilograms.
func (p Package) Kgs() float64 {
	if p.WeightUnit == WeightKG {
		return p.Weight
	}
	return p.Weight * kgPerLb
}

// Money is an amount in integer cents. Carriers quote to two decimal
// places; anything beyond basic decimal scaling is out of scope here.
type Money struct {
	Cents    int64
	Currency string
}

// NewMoney builds a Money from cents.
func NewMoney(cents int64, currency string) Money {
	return Money{Cents: cents, Currency: currency}
}

// ParseMoney scales a carrier decimal string ("10.30") to cents.
func ParseMoney(value, currency string) (Money, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return Money{}, fmt.Errorf("parse money: empty value")
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	// Scale the fraction to exactly two digits.
	if len(frac) > 2 {
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", value, err)
	}
	centPart, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", value, err)
	}
	cents := dollars*100 + centPart
	if neg {
		cents = -cents
	}
	return Money{Cents: cents, Currency: currency}, nil
}

// String renders the amount as a decimal with the currency code.
func (m Money) String() string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, m.Currency)
}

// Label is one purchased shipping label: a carrier-issued tracking number
// and the raw (already transport-decoded) image bytes.
type Label struct {
	TrackingNumber string
	Image          []byte
}

// RateEstimate is one quoted service option for a shipment.
type RateEstimate struct {
	Carrier     string
	ServiceCode string
	// ServiceName is the human-readable product name; it depends on the
	// shipment's origin country and may be empty for codes the carrier
	// did not document.
	ServiceName string
	TotalPrice  Money
	Packages    []Package
}

// ShipmentEvent is a single tracking milestone. Timestamp and Location are
// nil when the carrier omitted them; events without a timestamp cannot be
// ordered and keep their reported position.
type ShipmentEvent struct {
	Description string
	Timestamp   *time.Time
	Location    *Location
}

// RateResponse is the result envelope for a rate query.
type RateResponse struct {
	Success bool
	Message string
	// Raw is the unparsed response body, kept for debugging.
	Raw   string
	Rates []RateEstimate
}

// TrackingResponse is the result envelope for a tracking query.
type TrackingResponse struct {
	Success bool
	Message string
	Raw     string

	TrackingNumber string
	Origin         *Location
	Destination    *Location
	Events         []ShipmentEvent
}
