package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dormku_backend/internals/databases/testdb"
	buildingModel "dormku_backend/internals/features/rentals/buildings/model"
	roomModel "dormku_backend/internals/features/rentals/rooms/model"
	tenantModel "dormku_backend/internals/features/rentals/tenants/model"
)

func newBillApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	ctl := NewBillController(db, nil)
	app.Post("/api/a/bills", ctl.Create)
	return app
}

func seedTenantInRoom(t *testing.T, db *gorm.DB) (tenantModel.TenantModel, roomModel.RoomModel) {
	t.Helper()
	building := buildingModel.BuildingModel{BuildingName: "Gedung Melati"}
	require.NoError(t, db.Create(&building).Error)
	room := roomModel.RoomModel{
		RoomBuildingID:  building.BuildingID,
		RoomNumber:      "C-301",
		RoomMonthlyRent: decimal.RequireFromString("3500.00"),
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
	return tenant, room
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]any) int {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, 60000)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestBillCreate_RoomMustMatchTenant(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testdb.Open(t)
	app := newBillApp(db)
	tenant, room := seedTenantInRoom(t, db)

	month := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	// A room that is not the tenant's current one is refused outright.
	code := postJSON(t, app, "/api/a/bills", map[string]any{
		"tenant_id":     tenant.TenantID,
		"room_id":       uuid.New(),
		"billing_month": month.Format(time.RFC3339),
		"due_date":      month.AddDate(0, 0, 9).Format(time.RFC3339),
	})
	require.Equal(t, fiber.StatusBadRequest, code)

	// Matching room, and omitting the room entirely, both work.
	code = postJSON(t, app, "/api/a/bills", map[string]any{
		"tenant_id":     tenant.TenantID,
		"room_id":       room.RoomID,
		"billing_month": month.Format(time.RFC3339),
		"due_date":      month.AddDate(0, 0, 9).Format(time.RFC3339),
	})
	require.Equal(t, fiber.StatusCreated, code)

	nextMonth := month.AddDate(0, 1, 0)
	code = postJSON(t, app, "/api/a/bills", map[string]any{
		"tenant_id":     tenant.TenantID,
		"billing_month": nextMonth.Format(time.RFC3339),
		"due_date":      nextMonth.AddDate(0, 0, 9).Format(time.RFC3339),
	})
	require.Equal(t, fiber.StatusCreated, code)
}
