package server

import (
	"fmt"
	"time"

	"github.com/parcelbridge/logistic/pkg/carrier"
)

// carrierRequest is the common shape of every carrier endpoint body.
type carrierRequest interface {
	carrierName() string
}

type rateRequest struct {
	Carrier     string       `json:"carrier"`
	Origin      *addressDTO  `json:"origin"`
	Destination *addressDTO  `json:"destination"`
	Packages    []packageDTO `json:"packages"`
	Options     *optionsDTO  `json:"options,omitempty"`
}

func (r *rateRequest) carrierName() string { return r.Carrier }

func (r *rateRequest) validate() error {
	if r.Carrier == "" {
		return fmt.Errorf("missing 'carrier'")
	}
	if r.Origin == nil || r.Destination == nil {
		return fmt.Errorf("missing 'origin' or 'destination'")
	}
	if len(r.Packages) == 0 {
		return fmt.Errorf("at least one package is required")
	}
	return nil
}

type trackingRequest struct {
	Carrier        string      `json:"carrier"`
	TrackingNumber string      `json:"trackingNumber"`
	Options        *optionsDTO `json:"options,omitempty"`
}

func (r *trackingRequest) carrierName() string { return r.Carrier }

func (r *trackingRequest) validate() error {
	if r.Carrier == "" {
		return fmt.Errorf("missing 'carrier'")
	}
	if r.TrackingNumber == "" {
		return fmt.Errorf("missing 'trackingNumber'")
	}
	return nil
}

type labelRequest struct {
	Carrier     string           `json:"carrier"`
	Shipper     *addressDTO      `json:"shipper"`
	Origin      *addressDTO      `json:"origin"`
	Destination *addressDTO      `json:"destination"`
	Packages    []packageDTO     `json:"packages"`
	Options     *labelOptionsDTO `json:"options,omitempty"`
}

func (r *labelRequest) carrierName() string { return r.Carrier }

func (r *labelRequest) validate() error {
	if r.Carrier == "" {
		return fmt.Errorf("missing 'carrier'")
	}
	if r.Shipper == nil || r.Origin == nil || r.Destination == nil {
		return fmt.Errorf("missing 'shipper', 'origin', or 'destination'")
	}
	if len(r.Packages) == 0 {
		return fmt.Errorf("at least one package is required")
	}
	return nil
}

type addressDTO struct {
	Name          string `json:"name,omitempty"`
	Attention     string `json:"attention,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Fax           string `json:"fax,omitempty"`
	Line1         string `json:"line1,omitempty"`
	Line2         string `json:"line2,omitempty"`
	Line3         string `json:"line3,omitempty"`
	City          string `json:"city,omitempty"`
	Province      string `json:"province,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Country       string `json:"country,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	Commercial    bool   `json:"commercial,omitempty"`
}

func (a *addressDTO) toModel() *carrier.Location {
	if a == nil {
		return nil
	}
	return &carrier.Location{
		Name:          a.Name,
		Attention:     a.Attention,
		Phone:         a.Phone,
		Fax:           a.Fax,
		Address1:      a.Line1,
		Address2:      a.Line2,
		Address3:      a.Line3,
		City:          a.City,
		Province:      a.Province,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		AccountNumber: a.AccountNumber,
		Commercial:    a.Commercial,
	}
}

func addressFromModel(l *carrier.Location) *addressDTO {
	if l == nil {
		return nil
	}
	return &addressDTO{
		Name:          l.Name,
		Attention:     l.Attention,
		Phone:         l.Phone,
		Fax:           l.Fax,
		Line1:         l.Address1,
		Line2:         l.Address2,
		Line3:         l.Address3,
		City:          l.City,
		Province:      l.Province,
		PostalCode:    l.PostalCode,
		Country:       l.Country,
		AccountNumber: l.AccountNumber,
		Commercial:    l.Commercial,
	}
}

type packageDTO struct {
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	DimensionUnit string  `json:"dimensionUnit,omitempty"`
	Weight        float64 `json:"weight"`
	WeightUnit    string  `json:"weightUnit,omitempty"`
	Description   string  `json:"description,omitempty"`
}

func packagesToModel(dtos []packageDTO) []carrier.Package {
	packages := make([]carrier.Package, len(dtos))
	for i, d := range dtos {
		pkg := carrier.Package{
			Length:        d.Length,
			Width:         d.Width,
			Height:        d.Height,
			Weight:        d.Weight,
			DimensionUnit: carrier.DimensionCM,
			WeightUnit:    carrier.WeightKG,
			Description:   d.Description,
		}
		if d.DimensionUnit == "in" {
			pkg.DimensionUnit = carrier.DimensionIN
		}
		if d.WeightUnit == "lb" {
			pkg.WeightUnit = carrier.WeightLB
		}
		packages[i] = pkg
	}
	return packages
}

type optionsDTO struct {
	Service       string `json:"service,omitempty"`
	OriginAccount string `json:"originAccount,omitempty"`
	Test          bool   `json:"test,omitempty"`
}

func (o *optionsDTO) toModel() *carrier.Options {
	if o == nil {
		return nil
	}
	return &carrier.Options{
		Service:       o.Service,
		OriginAccount: o.OriginAccount,
		Test:          o.Test,
	}
}

type labelOptionsDTO struct {
	optionsDTO
	ShipmentNumber string    `json:"shipmentNumber,omitempty"`
	ExpectedPrice  *moneyDTO `json:"expectedPrice,omitempty"`
	PriceEpsilon   *moneyDTO `json:"priceEpsilon,omitempty"`
}

func (o *labelOptionsDTO) toModel() (*carrier.Options, error) {
	if o == nil {
		return nil, nil
	}
	opts := o.optionsDTO.toModel()
	opts.ShipmentNumber = o.ShipmentNumber

	if o.ExpectedPrice != nil {
		expected, err := o.ExpectedPrice.toModel()
		if err != nil {
			return nil, fmt.Errorf("invalid 'expectedPrice': %w", err)
		}
		opts.ExpectedPrice = &expected
	}
	if o.PriceEpsilon != nil {
		epsilon, err := o.PriceEpsilon.toModel()
		if err != nil {
			return nil, fmt.Errorf("invalid 'priceEpsilon': %w", err)
		}
		opts.PriceEpsilon = epsilon
	}
	return opts, nil
}

type moneyDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func (m *moneyDTO) toModel() (carrier.Money, error) {
	return carrier.ParseMoney(m.Amount, m.Currency)
}

func moneyFromModel(m *carrier.Money) *moneyDTO {
	if m == nil {
		return nil
	}
	sign, cents := "", m.Cents
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return &moneyDTO{
		Amount:   fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100),
		Currency: m.Currency,
	}
}

type rateDTO struct {
	Carrier     string    `json:"carrier"`
	ServiceCode string    `json:"serviceCode"`
	ServiceName string    `json:"serviceName"`
	TotalPrice  *moneyDTO `json:"totalPrice"`
}

type rateResponseDTO struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Rates   []rateDTO `json:"rates"`
}

func rateResponseFromModel(resp *carrier.RateResponse) rateResponseDTO {
	out := rateResponseDTO{
		Success: resp.Success,
		Message: resp.Message,
		Rates:   make([]rateDTO, len(resp.Rates)),
	}
	for i, rate := range resp.Rates {
		price := rate.TotalPrice
		out.Rates[i] = rateDTO{
			Carrier:     rate.Carrier,
			ServiceCode: rate.ServiceCode,
			ServiceName: rate.ServiceName,
			TotalPrice:  moneyFromModel(&price),
		}
	}
	return out
}

type eventDTO struct {
	Description string      `json:"description"`
	Timestamp   *time.Time  `json:"timestamp,omitempty"`
	Location    *addressDTO `json:"location,omitempty"`
}

type trackingResponseDTO struct {
	Success        bool        `json:"success"`
	Message        string      `json:"message,omitempty"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	Origin         *addressDTO `json:"origin,omitempty"`
	Destination    *addressDTO `json:"destination,omitempty"`
	Events         []eventDTO  `json:"events"`
}

func trackingResponseFromModel(resp *carrier.TrackingResponse) trackingResponseDTO {
	out := trackingResponseDTO{
		Success:        resp.Success,
		Message:        resp.Message,
		TrackingNumber: resp.TrackingNumber,
		Origin:         addressFromModel(resp.Origin),
		Destination:    addressFromModel(resp.Destination),
		Events:         make([]eventDTO, len(resp.Events)),
	}
	for i, event := range resp.Events {
		out.Events[i] = eventDTO{
			Description: event.Description,
			Timestamp:   event.Timestamp,
			Location:    addressFromModel(event.Location),
		}
	}
	return out
}

type labelDTO struct {
	TrackingNumber string `json:"trackingNumber"`
	// Image is the raw label bytes; encoding/json emits it base64
	// encoded.
	Image []byte `json:"image"`
}

type shipmentDTO struct {
	Number         string     `json:"number"`
	ServiceCode    string     `json:"serviceCode"`
	State          string     `json:"state"`
	Price          *moneyDTO  `json:"price,omitempty"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	Labels         []labelDTO `json:"labels,omitempty"`
	Errors         string     `json:"errors,omitempty"`
}

func shipmentFromModel(s *carrier.Shipment) shipmentDTO {
	out := shipmentDTO{
		Number:         s.Number,
		ServiceCode:    s.ServiceCode,
		State:          string(s.State),
		Price:          moneyFromModel(s.Price),
		TrackingNumber: s.TrackingNumber,
		Errors:         s.Errors,
	}
	for _, label := range s.Labels {
		out.Labels = append(out.Labels, labelDTO{
			TrackingNumber: label.TrackingNumber,
			Image:          label.Image,
		})
	}
	return out
}
