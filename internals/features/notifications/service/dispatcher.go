package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	billModel "dormku_backend/internals/features/finance/bills/model"
	notifModel "dormku_backend/internals/features/notifications/model"
	tenantModel "dormku_backend/internals/features/rentals/tenants/model"
	"dormku_backend/internals/helpers/dbtime"
)

// Dispatcher builds and pushes LINE messages for domain events and records
// every attempt in the notifications audit trail. It is only ever invoked
// from queue workers, never inline in a request handler.
type Dispatcher struct {
	DB   *gorm.DB
	Line LineSender
}

func NewDispatcher(db *gorm.DB, line LineSender) *Dispatcher {
	return &Dispatcher{DB: db, Line: line}
}

type DispatchResult struct {
	Success        bool       `json:"success"`
	NotificationID *uuid.UUID `json:"notification_id,omitempty"`
}

// Dispatch sends one notification to one tenant.
//   - Tenant without a linked LINE identity: {Success:false}, nil error and
//     NO audit record — not applicable is not a failure.
//   - Push failure: a failed audit record is written and the error is
//     returned so the queue retries.
func (d *Dispatcher) Dispatch(ctx context.Context, tenantID uuid.UUID, ntype notifModel.NotificationType, billID *uuid.UUID, extra map[string]string) (DispatchResult, error) {
	var tenant tenantModel.TenantModel
	if err := d.DB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DispatchResult{}, fmt.Errorf("tenant %s not found", tenantID)
		}
		return DispatchResult{}, err
	}

	if tenant.TenantLineUserID == nil || *tenant.TenantLineUserID == "" {
		log.Printf("[NOTIFY] tenant=%s has no LINE identity, skipping %s", tenantID, ntype)
		return DispatchResult{Success: false}, nil
	}

	// A bill-typed job without a bill id is malformed; fail it cleanly so
	// the queue dead-letters it instead of panicking in the template.
	if billID == nil && billRequired(ntype) {
		return DispatchResult{}, fmt.Errorf("notification type %s requires a bill id", ntype)
	}

	var bill *billModel.BillModel
	if billID != nil {
		var b billModel.BillModel
		if err := d.DB.WithContext(ctx).
			Where("bill_id = ?", *billID).
			First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return DispatchResult{}, fmt.Errorf("bill %s not found", *billID)
			}
			return DispatchResult{}, err
		}
		bill = &b
	}

	text, data := BuildMessage(ntype, tenant.TenantName, bill, time.Now(), extra)
	payload, _ := json.Marshal(data)

	if err := d.Line.PushText(ctx, *tenant.TenantLineUserID, text); err != nil {
		errText := err.Error()
		rec := notifModel.NotificationModel{
			NotificationTenantID: tenantID,
			NotificationType:     ntype,
			NotificationStatus:   notifModel.NotificationStatusFailed,
			NotificationData:     datatypes.JSON(payload),
			NotificationError:    &errText,
		}
		if dbErr := d.DB.WithContext(ctx).Create(&rec).Error; dbErr != nil {
			log.Printf("[NOTIFY] failed to record failed notification tenant=%s: %v", tenantID, dbErr)
		}
		// Bubble up so the queue's retry/backoff takes over.
		return DispatchResult{Success: false}, err
	}

	now := time.Now()
	rec := notifModel.NotificationModel{
		NotificationTenantID: tenantID,
		NotificationType:     ntype,
		NotificationStatus:   notifModel.NotificationStatusSent,
		NotificationData:     datatypes.JSON(payload),
		NotificationSentAt:   &now,
	}
	if err := d.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		log.Printf("[NOTIFY] sent but failed to record notification tenant=%s: %v", tenantID, err)
		return DispatchResult{Success: true}, nil
	}
	return DispatchResult{Success: true, NotificationID: &rec.NotificationID}, nil
}

/* =========================================================
   Message building (pure)
========================================================= */

// billRequired reports whether a notification type's message reads bill
// fields. payment_rejected and maintenance_updated render without one.
func billRequired(ntype notifModel.NotificationType) bool {
	switch ntype {
	case notifModel.NotificationTypeBillCreated,
		notifModel.NotificationTypeBillDue,
		notifModel.NotificationTypeBillOverdue,
		notifModel.NotificationTypePaymentApproved:
		return true
	}
	return false
}

// BuildMessage renders the display text and the audit payload for one
// notification type. A bill-typed call with a nil bill degrades to the
// generic text instead of dereferencing it.
func BuildMessage(ntype notifModel.NotificationType, tenantName string, bill *billModel.BillModel, now time.Time, extra map[string]string) (string, map[string]interface{}) {
	data := map[string]interface{}{
		"type":        string(ntype),
		"tenant_name": tenantName,
	}
	for k, v := range extra {
		data[k] = v
	}

	if bill != nil {
		data["bill_id"] = bill.BillID.String()
		data["billing_month"] = bill.BillBillingMonth.Format("2006-01")
		data["due_date"] = bill.BillDueDate.Format("2006-01-02")
		data["total_amount"] = bill.BillTotalAmount.StringFixed(2)
		data["paid_amount"] = bill.BillPaidAmount.StringFixed(2)
		data["remaining"] = bill.RemainingAmount().StringFixed(2)
	}

	if bill == nil && billRequired(ntype) {
		return fmt.Sprintf("Hi %s, you have a new notification.", tenantName), data
	}

	switch ntype {
	case notifModel.NotificationTypeBillCreated:
		return fmt.Sprintf("Hi %s, your bill for %s is ready. Total: %s. Due on %s.",
			tenantName, bill.BillBillingMonth.Format("January 2006"),
			bill.BillTotalAmount.StringFixed(2), bill.BillDueDate.Format("2 Jan 2006")), data

	case notifModel.NotificationTypeBillDue:
		return fmt.Sprintf("Hi %s, a reminder that your bill of %s is due on %s.",
			tenantName, bill.RemainingAmount().StringFixed(2),
			bill.BillDueDate.Format("2 Jan 2006")), data

	case notifModel.NotificationTypeBillOverdue:
		days := dbtime.DaysOverdue(bill.BillDueDate, now)
		data["days_overdue"] = days
		return fmt.Sprintf("Hi %s, your bill of %s is %d day(s) overdue. Please settle it as soon as possible.",
			tenantName, bill.RemainingAmount().StringFixed(2), days), data

	case notifModel.NotificationTypePaymentApproved:
		return fmt.Sprintf("Hi %s, your payment has been approved. Remaining balance: %s.",
			tenantName, bill.RemainingAmount().StringFixed(2)), data

	case notifModel.NotificationTypePaymentRejected:
		msg := fmt.Sprintf("Hi %s, your payment was rejected.", tenantName)
		if r, ok := extra["reason"]; ok && r != "" {
			msg += " Reason: " + r
		}
		return msg, data

	case notifModel.NotificationTypeMaintenanceUpdated:
		title := extra["title"]
		status := extra["status"]
		return fmt.Sprintf("Hi %s, your maintenance request \"%s\" is now %s.",
			tenantName, title, status), data
	}

	return fmt.Sprintf("Hi %s, you have a new notification.", tenantName), data
}
