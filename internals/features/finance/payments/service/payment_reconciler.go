package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dormku_backend/internals/constants"
	billModel "dormku_backend/internals/features/finance/bills/model"
	payModel "dormku_backend/internals/features/finance/payments/model"
	notifModel "dormku_backend/internals/features/notifications/model"
	"dormku_backend/internals/mq"
)

// PaymentReconciler records payments against bills and keeps the bill's
// paid amount and status reconciled. Every mutating operation runs in one
// transaction holding a row lock on the bill, so two concurrent
// submissions cannot both pass the remaining-balance check and jointly
// overshoot the total.
type PaymentReconciler struct {
	DB        *gorm.DB
	Publisher mq.Publisher // best-effort notification enqueue; may be nil in tests
}

func NewPaymentReconciler(db *gorm.DB, publisher mq.Publisher) *PaymentReconciler {
	return &PaymentReconciler{DB: db, Publisher: publisher}
}

/* =========================================================
   Pure reconciliation rules
========================================================= */

// NextBillStatus after a paid-amount change: paid when fully covered,
// otherwise back to pending.
func NextBillStatus(paidAmount, totalAmount decimal.Decimal) billModel.BillStatus {
	if paidAmount.GreaterThanOrEqual(totalAmount) {
		return billModel.BillStatusPaid
	}
	return billModel.BillStatusPending
}

// SumApproved recomputes the paid amount from a payment history rather
// than adjusting incrementally, so it stays correct even over a partially
// inconsistent history.
func SumApproved(payments []payModel.PaymentModel) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.PaymentStatus == payModel.PaymentStatusApproved {
			total = total.Add(p.PaymentAmount)
		}
	}
	return total
}

// ValidateAmount checks a new payment against the remaining balance.
func ValidateAmount(amount, remaining decimal.Decimal) error {
	if !amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "Payment amount must be positive")
	}
	if amount.GreaterThan(remaining) {
		return fiber.NewError(fiber.StatusBadRequest, "Payment amount exceeds remaining balance")
	}
	return nil
}

/* =========================================================
   Record / submit
========================================================= */

type RecordPaymentInput struct {
	BillID      uuid.UUID
	TenantID    uuid.UUID // for tenant submissions: the caller; for admin: bill's tenant when zero
	Amount      decimal.Decimal
	Method      payModel.PaymentMethod
	PaymentDate time.Time
	ReceiptURL  *string
	Notes       *string
}

// lockBill loads the bill FOR UPDATE inside tx.
func lockBill(tx *gorm.DB, billID uuid.UUID) (*billModel.BillModel, error) {
	var bill billModel.BillModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("bill_id = ?", billID).
		First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Bill not found")
		}
		return nil, err
	}
	return &bill, nil
}

// RecordPayment is the admin path: the payment lands as pending, and the
// bill only moves to verifying for a slip-based method that actually has a
// slip attached.
func (s *PaymentReconciler) RecordPayment(ctx context.Context, in RecordPaymentInput) (*payModel.PaymentModel, error) {
	var payment payModel.PaymentModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err := lockBill(tx, in.BillID)
		if err != nil {
			return err
		}
		if err := ValidateAmount(in.Amount, bill.RemainingAmount()); err != nil {
			return err
		}

		tenantID := in.TenantID
		if tenantID == uuid.Nil {
			tenantID = bill.BillTenantID
		}

		payment = payModel.PaymentModel{
			PaymentBillID:     bill.BillID,
			PaymentTenantID:   tenantID,
			PaymentAmount:     in.Amount,
			PaymentMethod:     in.Method,
			PaymentStatus:     payModel.PaymentStatusPending,
			PaymentDate:       in.PaymentDate,
			PaymentReceiptURL: in.ReceiptURL,
			PaymentNotes:      in.Notes,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if in.Method.SlipBased() && in.ReceiptURL != nil && *in.ReceiptURL != "" {
			if err := tx.Model(&billModel.BillModel{}).
				Where("bill_id = ?", bill.BillID).
				Update("bill_status", billModel.BillStatusVerifying).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, asFiberError(err)
	}
	return &payment, nil
}

// SubmitTenantPayment is the tenant path: ownership is checked, and the
// bill always moves to verifying because every tenant submission awaits
// admin approval.
func (s *PaymentReconciler) SubmitTenantPayment(ctx context.Context, in RecordPaymentInput) (*payModel.PaymentModel, error) {
	var payment payModel.PaymentModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err := lockBill(tx, in.BillID)
		if err != nil {
			return err
		}
		// A bill that is not yours does not exist for you.
		if bill.BillTenantID != in.TenantID {
			return fiber.NewError(fiber.StatusNotFound, "Bill not found")
		}
		if bill.BillStatus == billModel.BillStatusPaid {
			return fiber.NewError(fiber.StatusBadRequest, "Bill is already paid")
		}
		if err := ValidateAmount(in.Amount, bill.RemainingAmount()); err != nil {
			return err
		}

		payment = payModel.PaymentModel{
			PaymentBillID:     bill.BillID,
			PaymentTenantID:   in.TenantID,
			PaymentAmount:     in.Amount,
			PaymentMethod:     in.Method,
			PaymentStatus:     payModel.PaymentStatusPending,
			PaymentDate:       in.PaymentDate,
			PaymentReceiptURL: in.ReceiptURL,
			PaymentNotes:      in.Notes,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		return tx.Model(&billModel.BillModel{}).
			Where("bill_id = ?", bill.BillID).
			Update("bill_status", billModel.BillStatusVerifying).Error
	})
	if err != nil {
		return nil, asFiberError(err)
	}
	return &payment, nil
}

/* =========================================================
   Approve / reject / delete
========================================================= */

// ApprovePayment marks the payment approved, bumps the bill's paid amount
// and settles the bill once fully covered. The notification enqueue runs
// after commit and its failure is only logged: the financial state change
// is the source of truth.
func (s *PaymentReconciler) ApprovePayment(ctx context.Context, paymentID uuid.UUID) (*payModel.PaymentModel, error) {
	var payment payModel.PaymentModel
	var billTenantID uuid.UUID
	var billID uuid.UUID

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_id = ?", paymentID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Payment not found")
			}
			return err
		}
		if payment.PaymentStatus != payModel.PaymentStatusPending {
			return fiber.NewError(fiber.StatusBadRequest, "Payment has already been reviewed")
		}

		bill, err := lockBill(tx, payment.PaymentBillID)
		if err != nil {
			return err
		}
		billTenantID = bill.BillTenantID
		billID = bill.BillID

		// Conditional flip: the pending check above read a snapshot from
		// before the bill lock was acquired. A concurrent reviewer may have
		// committed in between, so the status change only counts when this
		// tx is the one that actually moved the row off pending.
		res := tx.Model(&payModel.PaymentModel{}).
			Where("payment_id = ? AND payment_status = ?", payment.PaymentID, payModel.PaymentStatusPending).
			Update("payment_status", payModel.PaymentStatusApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "Payment has already been reviewed")
		}
		payment.PaymentStatus = payModel.PaymentStatusApproved

		newPaid := bill.BillPaidAmount.Add(payment.PaymentAmount)
		return tx.Model(&billModel.BillModel{}).
			Where("bill_id = ?", bill.BillID).
			Updates(map[string]interface{}{
				"bill_paid_amount": newPaid,
				"bill_status":      NextBillStatus(newPaid, bill.BillTotalAmount),
			}).Error
	})
	if err != nil {
		return nil, asFiberError(err)
	}

	s.enqueueNotification(ctx, billTenantID, &billID, notifModel.NotificationTypePaymentApproved, nil)
	return &payment, nil
}

// RejectPayment marks the payment rejected, appends the reason to its
// notes and, when the bill sat in verifying, returns it to pending.
func (s *PaymentReconciler) RejectPayment(ctx context.Context, paymentID uuid.UUID, reason *string) (*payModel.PaymentModel, error) {
	var payment payModel.PaymentModel
	var billTenantID uuid.UUID
	var billID uuid.UUID
	extra := map[string]string{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_id = ?", paymentID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Payment not found")
			}
			return err
		}
		if payment.PaymentStatus != payModel.PaymentStatusPending {
			return fiber.NewError(fiber.StatusBadRequest, "Payment has already been reviewed")
		}

		bill, err := lockBill(tx, payment.PaymentBillID)
		if err != nil {
			return err
		}
		billTenantID = bill.BillTenantID
		billID = bill.BillID

		notes := payment.PaymentNotes
		if reason != nil && *reason != "" {
			joined := *reason
			if notes != nil && *notes != "" {
				joined = *notes + "\nRejected: " + *reason
			} else {
				joined = "Rejected: " + *reason
			}
			notes = &joined
			extra["reason"] = *reason
		}

		// Same conditional flip as ApprovePayment: only the tx that moves
		// the row off pending may reject it.
		res := tx.Model(&payModel.PaymentModel{}).
			Where("payment_id = ? AND payment_status = ?", payment.PaymentID, payModel.PaymentStatusPending).
			Updates(map[string]interface{}{
				"payment_status": payModel.PaymentStatusRejected,
				"payment_notes":  notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "Payment has already been reviewed")
		}
		payment.PaymentStatus = payModel.PaymentStatusRejected
		payment.PaymentNotes = notes

		if bill.BillStatus == billModel.BillStatusVerifying {
			return tx.Model(&billModel.BillModel{}).
				Where("bill_id = ?", bill.BillID).
				Update("bill_status", billModel.BillStatusPending).Error
		}
		return nil
	})
	if err != nil {
		return nil, asFiberError(err)
	}

	s.enqueueNotification(ctx, billTenantID, &billID, notifModel.NotificationTypePaymentRejected, extra)
	return &payment, nil
}

// DeletePayment soft-deletes the payment and recomputes the bill's paid
// amount from the surviving history, not by subtracting the deleted row.
func (s *PaymentReconciler) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment payModel.PaymentModel
		if err := tx.Where("payment_id = ?", paymentID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Payment not found")
			}
			return err
		}

		bill, err := lockBill(tx, payment.PaymentBillID)
		if err != nil {
			return err
		}

		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}

		var remaining []payModel.PaymentModel
		if err := tx.Where("payment_bill_id = ?", bill.BillID).Find(&remaining).Error; err != nil {
			return err
		}
		newPaid := SumApproved(remaining)

		return tx.Model(&billModel.BillModel{}).
			Where("bill_id = ?", bill.BillID).
			Updates(map[string]interface{}{
				"bill_paid_amount": newPaid,
				"bill_status":      NextBillStatus(newPaid, bill.BillTotalAmount),
			}).Error
	})
	return asFiberError(err)
}

/* =========================================================
   Internals
========================================================= */

func (s *PaymentReconciler) enqueueNotification(ctx context.Context, tenantID uuid.UUID, billID *uuid.UUID, ntype notifModel.NotificationType, extra map[string]string) {
	if s.Publisher == nil {
		return
	}
	job := mq.SendLineNotificationJob{
		TenantID:         tenantID,
		BillID:           billID,
		NotificationType: string(ntype),
		Extra:            extra,
	}
	if err := mq.PublishJSON(ctx, s.Publisher, constants.QueueSendLineNotification, job); err != nil {
		log.Printf("[PAYMENT] notification enqueue failed tenant=%s type=%s: %v", tenantID, ntype, err)
	}
}

func asFiberError(err error) error {
	if err == nil {
		return nil
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
