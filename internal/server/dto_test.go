package server

import (
	"testing"

	"github.com/parcelbridge/logistic/pkg/carrier"
	"github.com/stretchr/testify/assert"
)

func TestMoneyFromModel(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"whole and fraction", 1030, "10.30"},
		{"fraction only", 23, "0.23"},
		{"zero", 0, "0.00"},
		{"negative", -1030, "-10.30"},
		{"negative fraction only", -5, "-0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := carrier.NewMoney(tt.cents, "USD")
			dto := moneyFromModel(&m)
			assert.Equal(t, tt.want, dto.Amount)
			assert.Equal(t, "USD", dto.Currency)
		})
	}
}

func TestMoneyFromModel_Nil(t *testing.T) {
	assert.Nil(t, moneyFromModel(nil))
}
