package ups

import (
	"math"
	"strconv"
	"strings"

	"github.com/parcelbridge/logistic/pkg/carrier"
	"github.com/parcelbridge/logistic/pkg/xmlnode"
)

// buildAccessRequest builds the authentication document prepended to every
// request body.
func buildAccessRequest(opts *carrier.Options) string {
	n := xmlnode.New("AccessRequest", func(n *xmlnode.Node) {
		n.Element("AccessLicenseNumber", opts.Key)
		n.Element("UserId", opts.Login)
		n.Element("Password", opts.Password)
	})
	return n.Document()
}

func buildRateRequest(origin, destination *carrier.Location, packages []carrier.Package, opts *carrier.Options, pickupCode string) string {
	root := xmlnode.New("RatingServiceSelectionRequest", func(n *xmlnode.Node) {
		n.Child("Request", func(r *xmlnode.Node) {
			r.Element("RequestAction", "Rate")
			r.Element("RequestOption", "Shop")
		})
		n.Child("PickupType", func(p *xmlnode.Node) {
			p.Element("Code", pickupCode)
		})
		n.Child("Shipment", func(s *xmlnode.Node) {
			shipper := origin
			if opts.Shipper != nil {
				shipper = opts.Shipper
			}
			s.Add(buildLocationNode("Shipper", shipper, opts))
			s.Add(buildLocationNode("ShipTo", destination, opts))
			if opts.Shipper != nil && opts.Shipper != origin {
				s.Add(buildLocationNode("ShipFrom", origin, opts))
			}
			for _, pkg := range packages {
				s.Add(buildPackageNode(pkg, origin, false))
			}
		})
	})
	return root.Document()
}

func buildTrackingRequest(trackingNumber string) string {
	root := xmlnode.New("TrackRequest", func(n *xmlnode.Node) {
		n.Child("Request", func(r *xmlnode.Node) {
			r.Element("RequestAction", "Track")
			r.Element("RequestOption", "1")
		})
		n.Element("TrackingNumber", trackingNumber)
	})
	return root.Document()
}

func buildShipmentConfirmRequest(shipment *carrier.Shipment, opts *carrier.Options) string {
	root := xmlnode.New("ShipmentConfirmRequest", func(n *xmlnode.Node) {
		n.Child("Request", func(r *xmlnode.Node) {
			r.Element("RequestAction", "ShipConfirm")
			r.Element("RequestOption", "validate")
			if shipment.Number != "" {
				r.Child("TransactionReference", func(tr *xmlnode.Node) {
					tr.Element("CustomerContext", shipment.Number)
				})
			}
		})
		n.Child("LabelSpecification", func(l *xmlnode.Node) {
			l.Child("LabelPrintMethod", func(m *xmlnode.Node) { m.Element("Code", "GIF") })
			l.Child("LabelImageFormat", func(f *xmlnode.Node) { f.Element("Code", "GIF") })
		})
		n.Child("Shipment", func(s *xmlnode.Node) {
			s.Add(buildLocationNode("Shipper", shipment.Shipper, opts))
			s.Add(buildLocationNode("ShipTo", shipment.Destination, opts))
			s.Add(buildLocationNode("ShipFrom", shipment.Origin, opts))
			s.Child("PaymentInformation", func(p *xmlnode.Node) {
				p.Child("Prepaid", func(pre *xmlnode.Node) {
					pre.Child("BillShipper", func(b *xmlnode.Node) {
						b.Element("AccountNumber", firstNonBlank(shipment.Payer.AccountNumber, opts.OriginAccount))
					})
				})
			})
			s.Child("Service", func(sv *xmlnode.Node) {
				sv.Element("Code", shipment.ServiceCode)
			})
			for _, pkg := range shipment.Packages {
				s.Add(buildPackageNode(pkg, shipment.Origin, true))
			}
		})
	})
	return root.Document()
}

func buildShipmentAcceptRequest(shipmentNumber, digest string) string {
	root := xmlnode.New("ShipmentAcceptRequest", func(n *xmlnode.Node) {
		n.Child("Request", func(r *xmlnode.Node) {
			r.Element("RequestAction", "ShipAccept")
			if shipmentNumber != "" {
				r.Child("TransactionReference", func(tr *xmlnode.Node) {
					tr.Element("CustomerContext", shipmentNumber)
				})
			}
		})
		n.Element("ShipmentDigest", digest)
	})
	return root.Document()
}

// buildLocationNode renders one shipping party. The same builder serves
// Shipper, ShipTo and ShipFrom so their address formatting cannot diverge.
//
// The shipping party's name goes in a Name element and carries no
// attention line; every other role uses CompanyName and may carry
// AttentionName. Account numbers attach only to the Shipper (as the
// account owner) or the ShipTo (as an assigned identification number).
func buildLocationNode(role string, loc *carrier.Location, opts *carrier.Options) *xmlnode.Node {
	return xmlnode.New(role, func(n *xmlnode.Node) {
		if loc.Name != "" {
			nameTag := "CompanyName"
			if role == "Shipper" {
				nameTag = "Name"
			}
			n.Element(nameTag, loc.Name)
			if nameTag == "CompanyName" {
				n.Element("AttentionName", loc.Attention)
			}
		}
		n.Element("PhoneNumber", digits(loc.Phone))
		n.Element("FaxNumber", digits(loc.Fax))

		switch role {
		case "Shipper":
			n.Element("ShipperNumber", firstNonBlank(loc.AccountNumber, opts.OriginAccount))
		case "ShipTo":
			n.Element("ShipperAssignedIdentificationNumber", firstNonBlank(loc.AccountNumber, opts.DestinationAccount))
		}

		n.Child("Address", func(a *xmlnode.Node) {
			a.Element("AddressLine1", loc.Address1)
			a.Element("AddressLine2", loc.Address2)
			a.Element("AddressLine3", loc.Address3)
			a.Element("City", loc.City)
			// Not every country has subdivisions; absence is legal.
			a.Element("StateProvinceCode", loc.Province)
			a.Element("PostalCode", loc.PostalCode)
			a.Element("CountryCode", loc.CountryCode())
			if !loc.Commercial {
				// UPS quotes residential rates for destinations it does
				// not know about; default to the same.
				a.Element("ResidentialAddressIndicator", "true")
			}
		})
	})
}

// buildPackageNode renders one parcel. Units follow the origin country;
// label-purchase requests (confirm=true) additionally carry the package
// description and omit the Dimensions block unless every axis is strictly
// positive.
func buildPackageNode(pkg carrier.Package, origin *carrier.Location, confirm bool) *xmlnode.Node {
	imperial := imperialCountries[origin.CountryCode()]

	dimCode, weightCode := "CM", "KGS"
	if imperial {
		dimCode, weightCode = "IN", "LBS"
	}

	axes := []carrier.Axis{carrier.AxisLength, carrier.AxisWidth, carrier.AxisHeight}
	values := make([]float64, len(axes))
	allPositive := true
	for i, axis := range axes {
		if imperial {
			values[i] = pkg.Inches(axis)
		} else {
			values[i] = pkg.Cm(axis)
		}
		if values[i] <= 0 {
			allPositive = false
		}
	}

	weight := pkg.Kgs()
	if imperial {
		weight = pkg.Lbs()
	}

	return xmlnode.New("Package", func(n *xmlnode.Node) {
		n.Child("PackagingType", func(p *xmlnode.Node) {
			p.Element("Code", "02")
		})
		if confirm {
			n.Element("Description", pkg.Description)
		}
		if !confirm || allPositive {
			n.Child("Dimensions", func(d *xmlnode.Node) {
				d.Child("UnitOfMeasurement", func(u *xmlnode.Node) {
					u.Element("Code", dimCode)
				})
				d.Element("Length", formatMeasure(values[0]))
				d.Element("Width", formatMeasure(values[1]))
				d.Element("Height", formatMeasure(values[2]))
			})
		}
		n.Child("PackageWeight", func(w *xmlnode.Node) {
			w.Child("UnitOfMeasurement", func(u *xmlnode.Node) {
				u.Element("Code", weightCode)
			})
			w.Element("Weight", formatMeasure(weight))
		})
	})
}

// formatMeasure rounds to 3 decimals and floors at 0.1; UPS rejects zero
// or negative measurements.
func formatMeasure(v float64) string {
	v = math.Round(v*1000) / 1000
	if v < 0.1 {
		v = 0.1
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
