package xmlnode_test

import (
	"testing"

	"github.com/parcelbridge/logistic/pkg/xmlnode"
	"github.com/stretchr/testify/assert"
)

func TestNode_Element_Leaf(t *testing.T) {
	n := xmlnode.New("TrackingNumber")
	assert.Equal(t, "<TrackingNumber></TrackingNumber>", n.XML())
}

func TestNode_NestedComposition(t *testing.T) {
	req := xmlnode.New("AccessRequest", func(n *xmlnode.Node) {
		n.Element("AccessLicenseNumber", "KEY")
		n.Element("UserId", "login")
		n.Element("Password", "secret")
	})

	assert.Equal(t,
		"<AccessRequest><AccessLicenseNumber>KEY</AccessLicenseNumber><UserId>login</UserId><Password>secret</Password></AccessRequest>",
		req.XML())
}

func TestNode_Element_SkipsBlank(t *testing.T) {
	addr := xmlnode.New("Address")
	addr.Element("City", "Atlanta")
	addr.Element("StateProvinceCode", "")
	addr.Element("PostalCode", "  ")
	addr.Element("CountryCode", "US")

	assert.Equal(t,
		"<Address><City>Atlanta</City><CountryCode>US</CountryCode></Address>",
		addr.XML())
}

func TestNode_Child_AlwaysEmitted(t *testing.T) {
	n := xmlnode.New("Shipment")
	n.Child("Address")

	assert.Equal(t, "<Shipment><Address></Address></Shipment>", n.XML())
}

func TestNode_OrderPreserved(t *testing.T) {
	n := xmlnode.New("Request")
	n.Element("RequestAction", "Rate")
	n.Element("RequestOption", "Shop")

	assert.Equal(t,
		"<Request><RequestAction>Rate</RequestAction><RequestOption>Shop</RequestOption></Request>",
		n.XML())

	// Insertion order, not alphabetical
	reversed := xmlnode.New("Request")
	reversed.Element("RequestOption", "Shop")
	reversed.Element("RequestAction", "Rate")
	assert.NotEqual(t, n.XML(), reversed.XML())
}

func TestNode_TextEscaped(t *testing.T) {
	n := xmlnode.New("Root")
	n.Element("CompanyName", "Smith & Sons <Ltd>")

	assert.Equal(t,
		"<Root><CompanyName>Smith &amp; Sons &lt;Ltd&gt;</CompanyName></Root>",
		n.XML())
}

func TestNode_Document(t *testing.T) {
	n := xmlnode.New("TrackRequest")
	n.Element("TrackingNumber", "1Z12345E0291980793")

	doc := n.Document()
	assert.Equal(t,
		xmlnode.Header+"<TrackRequest><TrackingNumber>1Z12345E0291980793</TrackingNumber></TrackRequest>",
		doc)
}

func TestNode_DeepNesting(t *testing.T) {
	n := xmlnode.New("Package", func(p *xmlnode.Node) {
		p.Child("PackagingType", func(pt *xmlnode.Node) {
			pt.Element("Code", "02")
		})
		p.Child("PackageWeight", func(w *xmlnode.Node) {
			w.Child("UnitOfMeasurement", func(u *xmlnode.Node) {
				u.Element("Code", "LBS")
			})
			w.Element("Weight", "2.5")
		})
	})

	assert.Equal(t,
		"<Package><PackagingType><Code>02</Code></PackagingType><PackageWeight><UnitOfMeasurement><Code>LBS</Code></UnitOfMeasurement><Weight>2.5</Weight></PackageWeight></Package>",
		n.XML())
}

func TestNode_Add(t *testing.T) {
	shipment := xmlnode.New("Shipment")
	shipper := xmlnode.New("Shipper")
	shipTo := xmlnode.New("ShipTo")
	shipment.Add(shipper, shipTo)

	assert.Equal(t, "<Shipment><Shipper></Shipper><ShipTo></ShipTo></Shipment>", shipment.XML())
}
