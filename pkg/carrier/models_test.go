package carrier_test

import (
	"testing"

	"github.com/parcelbridge/logistic/pkg/carrier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_CountryCode(t *testing.T) {
	loc := &carrier.Location{Country: "us"}
	assert.Equal(t, "US", loc.CountryCode())

	loc = &carrier.Location{Country: " CA "}
	assert.Equal(t, "CA", loc.CountryCode())

	loc = &carrier.Location{}
	assert.Equal(t, "", loc.CountryCode())
}

func TestPackage_DimensionConversion(t *testing.T) {
	pkg := carrier.Package{
		Length:        25.4,
		Width:         50.8,
		Height:        10,
		DimensionUnit: carrier.DimensionCM,
	}

	assert.InDelta(t, 10.0, pkg.Inches(carrier.AxisLength), 1e-9)
	assert.InDelta(t, 20.0, pkg.Inches(carrier.AxisWidth), 1e-9)
	assert.InDelta(t, 10.0, pkg.Cm(carrier.AxisHeight), 1e-9)
}

func TestPackage_DimensionConversion_Imperial(t *testing.T) {
	pkg := carrier.Package{
		Length:        10,
		Width:         4,
		Height:        2,
		DimensionUnit: carrier.DimensionIN,
	}

	assert.InDelta(t, 10.0, pkg.Inches(carrier.AxisLength), 1e-9)
	assert.InDelta(t, 25.4, pkg.Cm(carrier.AxisLength), 1e-9)
	assert.InDelta(t, 10.16, pkg.Cm(carrier.AxisWidth), 1e-9)
}

func TestPackage_WeightConversion(t *testing.T) {
	metric := carrier.Package{Weight: 1, WeightUnit: carrier.WeightKG}
	assert.InDelta(t, 1.0, metric.Kgs(), 1e-9)
	assert.InDelta(t, 2.2046226218, metric.Lbs(), 1e-6)

	imperial := carrier.Package{Weight: 2, WeightUnit: carrier.WeightLB}
	assert.InDelta(t, 2.0, imperial.Lbs(), 1e-9)
	assert.InDelta(t, 0.90718474, imperial.Kgs(), 1e-6)
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		value string
		cents int64
	}{
		{"10.30", 1030},
		{"10.3", 1030},
		{"10", 1000},
		{"0.10", 10},
		{".50", 50},
		{"123.456", 12345}, // extra precision truncated
		{"-4.05", -405},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			m, err := carrier.ParseMoney(tt.value, "USD")
			require.NoError(t, err)
			assert.Equal(t, tt.cents, m.Cents)
			assert.Equal(t, "USD", m.Currency)
		})
	}
}

func TestParseMoney_Invalid(t *testing.T) {
	_, err := carrier.ParseMoney("", "USD")
	assert.Error(t, err)

	_, err = carrier.ParseMoney("abc", "USD")
	assert.Error(t, err)
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "10.30 USD", carrier.NewMoney(1030, "USD").String())
	assert.Equal(t, "0.05 CAD", carrier.NewMoney(5, "CAD").String())
	assert.Equal(t, "-4.05 USD", carrier.NewMoney(-405, "USD").String())
}
