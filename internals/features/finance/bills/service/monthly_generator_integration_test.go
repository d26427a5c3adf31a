package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dormku_backend/internals/databases/testdb"
	billModel "dormku_backend/internals/features/finance/bills/model"
	buildingModel "dormku_backend/internals/features/rentals/buildings/model"
	roomModel "dormku_backend/internals/features/rentals/rooms/model"
	tenantModel "dormku_backend/internals/features/rentals/tenants/model"
	utilityModel "dormku_backend/internals/features/rentals/utilities/model"
)

func seedRoom(t *testing.T, db *gorm.DB, number string, rent string) roomModel.RoomModel {
	t.Helper()
	building := buildingModel.BuildingModel{BuildingName: "Gedung " + number}
	require.NoError(t, db.Create(&building).Error)
	room := roomModel.RoomModel{
		RoomBuildingID:  building.BuildingID,
		RoomNumber:      number,
		RoomMonthlyRent: d(rent),
		RoomStatus:      roomModel.RoomStatusOccupied,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func seedActiveTenant(t *testing.T, db *gorm.DB, roomID uuid.UUID, name string) tenantModel.TenantModel {
	t.Helper()
	tenant := tenantModel.TenantModel{
		TenantRoomID:     roomID,
		TenantName:       name,
		TenantMoveInDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		TenantStatus:     tenantModel.TenantStatusActive,
	}
	require.NoError(t, db.Create(&tenant).Error)
	return tenant
}

func TestGenerateMonthlyBills_RerunSkipsExisting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testdb.Open(t)
	ctx := context.Background()

	roomA := seedRoom(t, db, "A-101", "3500.00")
	roomB := seedRoom(t, db, "A-102", "4200.00")
	tenantA := seedActiveTenant(t, db, roomA.RoomID, "Budi")
	seedActiveTenant(t, db, roomB.RoomID, "Sari")

	// This one's room no longer exists, so its bill cannot be composed.
	orphan := seedActiveTenant(t, db, roomA.RoomID, "Andi")
	require.NoError(t, db.Model(&tenantModel.TenantModel{}).
		Where("tenant_id = ?", orphan.TenantID).
		Update("tenant_room_id", uuid.New()).Error)

	month := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	due := month.AddDate(0, 0, 9)

	// Metered snapshot for room A only; room B gets a rent-only bill.
	util := utilityModel.RoomUtilityModel{
		RoomUtilityRoomID:             roomA.RoomID,
		RoomUtilityMonth:              month,
		RoomUtilityWaterCurrent:       d("130"),
		RoomUtilityWaterRate:          d("18.00"),
		RoomUtilityWaterUsage:         d("10"),
		RoomUtilityWaterCost:          d("180.00"),
		RoomUtilityElectricityCurrent: d("950"),
		RoomUtilityElectricityRate:    d("8.00"),
		RoomUtilityElectricityUsage:   d("50"),
		RoomUtilityElectricityCost:    d("400.00"),
	}
	require.NoError(t, db.Create(&util).Error)

	composer := NewBillComposer(db)

	first, err := composer.GenerateMonthlyBills(ctx, month, due)
	require.NoError(t, err)
	require.Equal(t, 2, first.CreatedCount)
	require.Equal(t, 0, first.SkippedCount)
	require.Equal(t, 1, first.FailedCount)
	require.Len(t, first.BillIDs, 2)

	// Re-run for the same month: existing bills are skips, not failures,
	// and the broken tenant still fails rather than inflating the skips.
	second, err := composer.GenerateMonthlyBills(ctx, month, due)
	require.NoError(t, err)
	require.Equal(t, 0, second.CreatedCount)
	require.Equal(t, 2, second.SkippedCount)
	require.Equal(t, 1, second.FailedCount)
	require.Empty(t, second.BillIDs)

	// Tenant A's bill carries rent plus both metered lines.
	var billA billModel.BillModel
	require.NoError(t, db.
		Where("bill_tenant_id = ? AND bill_billing_month = ?", tenantA.TenantID, month).
		First(&billA).Error)
	require.True(t, billA.BillTotalAmount.Equal(d("4080.00")),
		"got %s", billA.BillTotalAmount)
	require.Equal(t, billModel.BillStatusPending, billA.BillStatus)
}

func TestCreateBill_DuplicateMonthConflicts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testdb.Open(t)
	ctx := context.Background()

	room := seedRoom(t, db, "B-201", "3500.00")
	tenant := seedActiveTenant(t, db, room.RoomID, "Budi")

	month := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	composer := NewBillComposer(db)

	bill, err := composer.CreateBill(ctx, CreateBillInput{
		TenantID:     tenant.TenantID,
		RoomID:       room.RoomID,
		BillingMonth: month,
		DueDate:      month.AddDate(0, 0, 9),
	})
	require.NoError(t, err)
	require.True(t, bill.BillTotalAmount.Equal(d("3500.00")))

	// Same tenant, same month again, even with a mid-month date: one live
	// bill per tenant per billing month.
	_, err = composer.CreateBill(ctx, CreateBillInput{
		TenantID:     tenant.TenantID,
		RoomID:       room.RoomID,
		BillingMonth: month.AddDate(0, 0, 14),
		DueDate:      month.AddDate(0, 0, 9),
	})
	require.Error(t, err)
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe))
	require.Equal(t, fiber.StatusConflict, fe.Code)
}
