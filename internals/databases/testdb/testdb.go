// Package testdb spins up a throwaway Postgres container for integration
// tests and returns a migrated gorm handle. Tests that use it must skip in
// short mode; the container lives for the test and is torn down after.
package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	billModel "dormku_backend/internals/features/finance/bills/model"
	payModel "dormku_backend/internals/features/finance/payments/model"
	notifModel "dormku_backend/internals/features/notifications/model"
	buildingModel "dormku_backend/internals/features/rentals/buildings/model"
	maintenanceModel "dormku_backend/internals/features/rentals/maintenance/model"
	roomModel "dormku_backend/internals/features/rentals/rooms/model"
	tenantModel "dormku_backend/internals/features/rentals/tenants/model"
	utilityModel "dormku_backend/internals/features/rentals/utilities/model"
	userModel "dormku_backend/internals/features/users/auth/model"
)

// Open starts a Postgres container, migrates the full schema and returns
// the handle. Cleanup is registered on t.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	t.Cleanup(cancel)

	container, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("dormku_test"),
		tcPostgres.WithUsername("dormku"),
		tcPostgres.WithPassword("dormku"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&buildingModel.BuildingModel{},
		&roomModel.RoomModel{},
		&tenantModel.TenantModel{},
		&utilityModel.RoomUtilityModel{},
		&billModel.BillModel{},
		&billModel.BillItemModel{},
		&payModel.PaymentModel{},
		&maintenanceModel.MaintenanceRequestModel{},
		&notifModel.NotificationModel{},
	))

	return db
}
