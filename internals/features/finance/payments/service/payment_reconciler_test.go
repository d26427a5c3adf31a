package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billModel "dormku_backend/internals/features/finance/bills/model"
	payModel "dormku_backend/internals/features/finance/payments/model"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestNextBillStatus(t *testing.T) {
	tests := []struct {
		name  string
		paid  string
		total string
		want  billModel.BillStatus
	}{
		{"fully covered", "3550", "3550", billModel.BillStatusPaid},
		{"over covered", "4000", "3550", billModel.BillStatusPaid},
		{"partial", "1000", "3550", billModel.BillStatusPending},
		{"nothing paid", "0", "3550", billModel.BillStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextBillStatus(d(tt.paid), d(tt.total)))
		})
	}
}

func TestSumApproved_OnlyApprovedCount(t *testing.T) {
	payments := []payModel.PaymentModel{
		{PaymentAmount: d("1000"), PaymentStatus: payModel.PaymentStatusApproved},
		{PaymentAmount: d("500"), PaymentStatus: payModel.PaymentStatusPending},
		{PaymentAmount: d("2000"), PaymentStatus: payModel.PaymentStatusApproved},
		{PaymentAmount: d("300"), PaymentStatus: payModel.PaymentStatusRejected},
	}
	assert.True(t, SumApproved(payments).Equal(d("3000")))
	assert.True(t, SumApproved(nil).IsZero())
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		remaining string
		wantErr   bool
	}{
		{"exact remaining", "2550", "2550", false},
		{"partial", "1000", "2550", false},
		{"zero", "0", "2550", true},
		{"negative", "-5", "2550", true},
		{"exceeds remaining", "2551", "2550", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(d(tt.amount), d(tt.remaining))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			fe, ok := err.(*fiber.Error)
			require.True(t, ok)
			assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		})
	}
}
