package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethodSlipBased(t *testing.T) {
	assert.True(t, PaymentMethodBankTransfer.SlipBased())
	assert.True(t, PaymentMethodPromptPay.SlipBased())
	assert.False(t, PaymentMethodCash.SlipBased())
	assert.False(t, PaymentMethodLinePay.SlipBased())
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodLinePay, PaymentMethodPromptPay} {
		assert.True(t, m.Valid(), "%s should be valid", m)
	}
	assert.False(t, PaymentMethod("cheque").Valid())
	assert.False(t, PaymentMethod("").Valid())
}
