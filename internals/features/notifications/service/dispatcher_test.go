package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billModel "dormku_backend/internals/features/finance/bills/model"
	notifModel "dormku_backend/internals/features/notifications/model"
)

func testBill() *billModel.BillModel {
	return &billModel.BillModel{
		BillID:           uuid.New(),
		BillBillingMonth: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		BillDueDate:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		BillTotalAmount:  decimal.NewFromInt(3550),
		BillPaidAmount:   decimal.NewFromInt(1000),
	}
}

func TestBuildMessage_BillCreated(t *testing.T) {
	bill := testBill()
	msg, data := BuildMessage(notifModel.NotificationTypeBillCreated, "Somchai", bill, time.Now(), nil)

	assert.Contains(t, msg, "Somchai")
	assert.Contains(t, msg, "June 2025")
	assert.Contains(t, msg, "3550.00")
	assert.Equal(t, bill.BillID.String(), data["bill_id"])
	assert.Equal(t, "2025-06", data["billing_month"])
}

func TestBuildMessage_BillOverdueIncludesDays(t *testing.T) {
	bill := testBill()
	now := bill.BillDueDate.AddDate(0, 0, 5)

	msg, data := BuildMessage(notifModel.NotificationTypeBillOverdue, "Somchai", bill, now, nil)

	assert.Contains(t, msg, "5 day(s) overdue")
	assert.Contains(t, msg, "2550.00") // remaining, not total
	assert.Equal(t, 5, data["days_overdue"])
}

func TestBuildMessage_PaymentRejectedCarriesReason(t *testing.T) {
	msg, _ := BuildMessage(notifModel.NotificationTypePaymentRejected, "Somchai", nil, time.Now(),
		map[string]string{"reason": "Slip is unreadable"})
	assert.Contains(t, msg, "rejected")
	assert.Contains(t, msg, "Slip is unreadable")

	msg, _ = BuildMessage(notifModel.NotificationTypePaymentRejected, "Somchai", nil, time.Now(), nil)
	assert.Contains(t, msg, "rejected")
	assert.NotContains(t, msg, "Reason:")
}

func TestBuildMessage_MaintenanceUpdated(t *testing.T) {
	msg, data := BuildMessage(notifModel.NotificationTypeMaintenanceUpdated, "Somchai", nil, time.Now(),
		map[string]string{"title": "Broken AC", "status": "in_progress"})

	assert.Contains(t, msg, `"Broken AC"`)
	assert.Contains(t, msg, "in_progress")
	assert.Equal(t, "Broken AC", data["title"])
}

func TestBuildMessage_BillTypesWithoutBillFallBack(t *testing.T) {
	for _, ntype := range []notifModel.NotificationType{
		notifModel.NotificationTypeBillCreated,
		notifModel.NotificationTypeBillDue,
		notifModel.NotificationTypeBillOverdue,
		notifModel.NotificationTypePaymentApproved,
	} {
		t.Run(string(ntype), func(t *testing.T) {
			var msg string
			require.NotPanics(t, func() {
				msg, _ = BuildMessage(ntype, "Somchai", nil, time.Now(), nil)
			})
			assert.Contains(t, msg, "Somchai")
		})
	}
}

func TestBuildMessage_PaymentApprovedShowsRemaining(t *testing.T) {
	bill := testBill()
	msg, data := BuildMessage(notifModel.NotificationTypePaymentApproved, "Somchai", bill, time.Now(), nil)

	require.Contains(t, msg, "approved")
	assert.Contains(t, msg, "2550.00")
	assert.Equal(t, "2550.00", data["remaining"])
}
