package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestDeriveUsage(t *testing.T) {
	prev := d("120")
	tests := []struct {
		name      string
		previous  *decimal.Decimal
		current   string
		policy    MissingPreviousPolicy
		wantUsage string
		wantOK    bool
	}{
		{"normal diff", &prev, "150", MissingPreviousZero, "30", true},
		{"meter rollover clamps to zero", &prev, "100", MissingPreviousZero, "0", true},
		{"equal readings", &prev, "120", MissingPreviousZero, "0", true},
		{"missing previous with zero policy", nil, "150", MissingPreviousZero, "0", true},
		{"missing previous with error policy", nil, "150", MissingPreviousError, "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage, ok := DeriveUsage(tt.previous, d(tt.current), tt.policy)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, usage.Equal(d(tt.wantUsage)), "usage = %s, want %s", usage, tt.wantUsage)
		})
	}
}

func TestDeriveCost(t *testing.T) {
	assert.True(t, DeriveCost(d("10"), d("15")).Equal(d("150")))
	assert.True(t, DeriveCost(d("0"), d("15")).IsZero())
	assert.True(t, DeriveCost(d("12.5"), d("8")).Equal(d("100")))
}
