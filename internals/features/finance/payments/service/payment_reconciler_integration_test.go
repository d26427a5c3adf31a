package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dormku_backend/internals/databases/testdb"
	billModel "dormku_backend/internals/features/finance/bills/model"
	billSvc "dormku_backend/internals/features/finance/bills/service"
	payModel "dormku_backend/internals/features/finance/payments/model"
	buildingModel "dormku_backend/internals/features/rentals/buildings/model"
	roomModel "dormku_backend/internals/features/rentals/rooms/model"
	tenantModel "dormku_backend/internals/features/rentals/tenants/model"
)

// seedBill persists one rent-only bill (total 3500.00) with its tenant,
// room and building, and returns the bill alongside the tenant.
func seedBill(t *testing.T, db *gorm.DB) (*billModel.BillModel, tenantModel.TenantModel) {
	t.Helper()

	building := buildingModel.BuildingModel{BuildingName: "Gedung " + uuid.NewString()[:8]}
	require.NoError(t, db.Create(&building).Error)

	room := roomModel.RoomModel{
		RoomBuildingID:  building.BuildingID,
		RoomNumber:      uuid.NewString()[:8],
		RoomMonthlyRent: d("3500.00"),
		RoomStatus:      roomModel.RoomStatusOccupied,
	}
	require.NoError(t, db.Create(&room).Error)

	tenant := tenantModel.TenantModel{
		TenantRoomID:     room.RoomID,
		TenantName:       "Budi",
		TenantMoveInDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		TenantStatus:     tenantModel.TenantStatusActive,
	}
	require.NoError(t, db.Create(&tenant).Error)

	month := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	bill, err := billSvc.NewBillComposer(db).CreateBill(context.Background(), billSvc.CreateBillInput{
		TenantID:     tenant.TenantID,
		RoomID:       room.RoomID,
		BillingMonth: month,
		DueDate:      month.AddDate(0, 0, 9),
	})
	require.NoError(t, err)
	return bill, tenant
}

func reloadBill(t *testing.T, db *gorm.DB, billID uuid.UUID) billModel.BillModel {
	t.Helper()
	var bill billModel.BillModel
	require.NoError(t, db.Where("bill_id = ?", billID).First(&bill).Error)
	return bill
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe), "want *fiber.Error, got %v", err)
	return fe.Code
}

func TestRecordPayment_OvershootRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testdb.Open(t)
	bill, _ := seedBill(t, db)
	rec := NewPaymentReconciler(db, nil)

	_, err := rec.RecordPayment(context.Background(), RecordPaymentInput{
		BillID:      bill.BillID,
		Amount:      d("4000.00"),
		Method:      payModel.PaymentMethodCash,
		PaymentDate: time.Now(),
	})
	require.Error(t, err)
	require.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	// Partial payment, then a second one that would push past the total.
	p1, err := rec.RecordPayment(context.Background(), RecordPaymentInput{
		BillID:      bill.BillID,
		Amount:      d("2000.00"),
		Method:      payModel.PaymentMethodCash,
		PaymentDate: time.Now(),
	})
	require.NoError(t, err)
	_, err = rec.ApprovePayment(context.Background(), p1.PaymentID)
	require.NoError(t, err)

	_, err = rec.RecordPayment(context.Background(), RecordPaymentInput{
		BillID:      bill.BillID,
		Amount:      d("2000.00"),
		Method:      payModel.PaymentMethodCash,
		PaymentDate: time.Now(),
	})
	require.Error(t, err)
	require.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestApprovePayment_SettlesBillAtBoundary(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testdb.Open(t)
	bill, _ := seedBill(t, db)
	rec := NewPaymentReconciler(db, nil)
	ctx := context.Background()

	p1, err := rec.RecordPayment(ctx, RecordPaymentInput{
		BillID: bill.BillID, Amount: d("2000.00"),
		Method: payModel.PaymentMethodCash, PaymentDate: time.Now(),
	})
	require.NoError(t, err)
	_, err = rec.ApprovePayment(ctx, p1.PaymentID)
	require.NoError(t, err)

	got := reloadBill(t, db, bill.BillID)
	require.True(t, got.BillPaidAmount.Equal(d("2000.00")))
	require.Equal(t, billModel.BillStatusPending, got.BillStatus)

	p2, err := rec.RecordPayment(ctx, RecordPaymentInput{
		BillID: bill.BillID, Amount: d("1500.00"),
		Method: payModel.PaymentMethodCash, PaymentDate: time.Now(),
	})
	require.NoError(t, err)
	_, err = rec.ApprovePayment(ctx, p2.PaymentID)
	require.NoError(t, err)

	got = reloadBill(t, db, bill.BillID)
	require.True(t, got.BillPaidAmount.Equal(d("3500.00")))
	require.Equal(t, billModel.BillStatusPaid, got.BillStatus)
}

// Two admins reviewing the same pending payment at once: exactly one
// decision lands and the bill's paid amount counts the payment once.
func TestApprovePayment_ConcurrentReviewCountsOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testdb.Open(t)
	bill, _ := seedBill(t, db)
	rec := NewPaymentReconciler(db, nil)
	ctx := context.Background()

	p, err := rec.RecordPayment(ctx, RecordPaymentInput{
		BillID: bill.BillID, Amount: d("2000.00"),
		Method: payModel.PaymentMethodCash, PaymentDate: time.Now(),
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = rec.ApprovePayment(ctx, p.PaymentID)
		}(i)
	}
	wg.Wait()

	var failed, succeeded int
	for _, e := range errs {
		if e != nil {
			failed++
			code := fiberCode(t, e)
			require.Contains(t, []int{fiber.StatusBadRequest, fiber.StatusConflict}, code)
		} else {
			succeeded++
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, failed)

	got := reloadBill(t, db, bill.BillID)
	require.True(t, got.BillPaidAmount.Equal(d("2000.00")),
		"paid amount counted more than once: %s", got.BillPaidAmount)
}

func TestRejectPayment_AfterApprovalRefused(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testdb.Open(t)
	bill, _ := seedBill(t, db)
	rec := NewPaymentReconciler(db, nil)
	ctx := context.Background()

	p, err := rec.RecordPayment(ctx, RecordPaymentInput{
		BillID: bill.BillID, Amount: d("2000.00"),
		Method: payModel.PaymentMethodCash, PaymentDate: time.Now(),
	})
	require.NoError(t, err)
	_, err = rec.ApprovePayment(ctx, p.PaymentID)
	require.NoError(t, err)

	reason := "wrong slip"
	_, err = rec.RejectPayment(ctx, p.PaymentID, &reason)
	require.Error(t, err)
	require.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	got := reloadBill(t, db, bill.BillID)
	require.True(t, got.BillPaidAmount.Equal(d("2000.00")))
}

func TestDeletePayment_RecomputesPaidAmount(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testdb.Open(t)
	bill, _ := seedBill(t, db)
	rec := NewPaymentReconciler(db, nil)
	ctx := context.Background()

	p1, err := rec.RecordPayment(ctx, RecordPaymentInput{
		BillID: bill.BillID, Amount: d("2000.00"),
		Method: payModel.PaymentMethodCash, PaymentDate: time.Now(),
	})
	require.NoError(t, err)
	_, err = rec.ApprovePayment(ctx, p1.PaymentID)
	require.NoError(t, err)

	p2, err := rec.RecordPayment(ctx, RecordPaymentInput{
		BillID: bill.BillID, Amount: d("1500.00"),
		Method: payModel.PaymentMethodCash, PaymentDate: time.Now(),
	})
	require.NoError(t, err)
	_, err = rec.ApprovePayment(ctx, p2.PaymentID)
	require.NoError(t, err)

	require.Equal(t, billModel.BillStatusPaid, reloadBill(t, db, bill.BillID).BillStatus)

	// Dropping the second payment rolls the bill back to the surviving sum.
	require.NoError(t, rec.DeletePayment(ctx, p2.PaymentID))

	got := reloadBill(t, db, bill.BillID)
	require.True(t, got.BillPaidAmount.Equal(d("2000.00")))
	require.Equal(t, billModel.BillStatusPending, got.BillStatus)
}
