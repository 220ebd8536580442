package ups

// Service code tables. UPS names the same service code differently
// depending on the shipment's origin country, so resolution walks the
// regional tables before falling back to the US (home country) table.
// These are immutable configuration data, initialized once.

var defaultServices = map[string]string{
	"01": "UPS Next Day Air",
	"02": "UPS Second Day Air",
	"03": "UPS Ground",
	"07": "UPS Worldwide Express",
	"08": "UPS Worldwide Expedited",
	"11": "UPS Standard",
	"12": "UPS Three-Day Select",
	"13": "UPS Next Day Air Saver",
	"14": "UPS Next Day Air Early A.M.",
	"54": "UPS Worldwide Express Plus",
	"59": "UPS Second Day Air A.M.",
	"65": "UPS Saver",
	"82": "UPS Today Standard",
	"83": "UPS Today Dedicated Courier",
	"84": "UPS Today Intercity",
	"85": "UPS Today Express",
	"86": "UPS Today Express Saver",
}

var canadaOriginServices = map[string]string{
	"01": "UPS Express",
	"02": "UPS Expedited",
	"14": "UPS Express Early A.M.",
}

var mexicoOriginServices = map[string]string{
	"07": "UPS Express",
	"08": "UPS Expedited",
	"54": "UPS Express Plus",
}

var euOriginServices = map[string]string{
	"07": "UPS Express",
	"08": "UPS Expedited",
}

var otherNonUSOriginServices = map[string]string{
	"07": "UPS Express",
}

var euCountryCodes = map[string]bool{
	"GB": true, "AT": true, "BE": true, "BG": true, "CY": true,
	"CZ": true, "DK": true, "EE": true, "FI": true, "FR": true,
	"DE": true, "GR": true, "HU": true, "IE": true, "IT": true,
	"LV": true, "LT": true, "LU": true, "MT": true, "NL": true,
	"PL": true, "PT": true, "RO": true, "SK": true, "SI": true,
	"ES": true, "SE": true,
}

// imperialCountries use inches and pounds on the wire; everyone else gets
// centimeters and kilograms. Keyed by the shipment's origin country.
var imperialCountries = map[string]bool{
	"US": true,
	"LR": true,
	"MM": true,
}

var pickupCodes = map[string]string{
	"daily_pickup":           "01",
	"customer_counter":       "03",
	"one_time_pickup":        "06",
	"on_call_air":            "07",
	"suggested_retail_rates": "11",
	"letter_center":          "19",
	"air_service_center":     "20",
}

// serviceNameFor resolves a service code's human-readable name for an
// origin country. Resolution order: Canada table, Mexico table, EU table,
// then the generic non-US table for any other non-US origin, and finally
// the default (US origin) table. A code absent everywhere resolves to "".
func serviceNameFor(originCountry, code string) string {
	var name string
	switch {
	case originCountry == "CA":
		name = canadaOriginServices[code]
	case originCountry == "MX":
		name = mexicoOriginServices[code]
	case euCountryCodes[originCountry]:
		name = euOriginServices[code]
	}
	if name == "" && originCountry != "US" {
		name = otherNonUSOriginServices[code]
	}
	if name == "" {
		name = defaultServices[code]
	}
	return name
}
