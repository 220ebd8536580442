package ups

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceNameFor(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		code    string
		want    string
	}{
		{"us origin uses default table", "US", "03", "UPS Ground"},
		{"us origin next day air", "US", "01", "UPS Next Day Air"},
		{"canada origin prefers regional table", "CA", "01", "UPS Express"},
		{"canada origin falls back to default", "CA", "03", "UPS Ground"},
		{"mexico origin prefers regional table", "MX", "07", "UPS Express"},
		{"mexico origin express plus", "MX", "54", "UPS Express Plus"},
		{"eu origin prefers regional table", "DE", "07", "UPS Express"},
		{"eu origin expedited", "FR", "08", "UPS Expedited"},
		{"eu origin falls back to default", "GB", "11", "UPS Standard"},
		{"other non-us origin generic table", "JP", "07", "UPS Express"},
		{"other non-us origin falls back to default", "JP", "03", "UPS Ground"},
		{"unknown code resolves to empty", "US", "99", ""},
		{"unknown code non-us resolves to empty", "CA", "99", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serviceNameFor(tt.origin, tt.code))
		})
	}
}

func TestFormatMeasure(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0.1"},
		{-3, "0.1"},
		{0.05, "0.1"},
		{0.1, "0.1"},
		{2.5, "2.5"},
		{2.54321, "2.543"},
		{2.54361, "2.544"},
		{10, "10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMeasure(tt.value), "formatMeasure(%v)", tt.value)
	}
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "4045551234", digits("(404) 555-1234"))
	assert.Equal(t, "", digits(""))
	assert.Equal(t, "123", digits("ext. 123"))
}
