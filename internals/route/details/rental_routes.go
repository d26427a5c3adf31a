package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	buildingRoute "dormku_backend/internals/features/rentals/buildings/route"
	maintenanceRoute "dormku_backend/internals/features/rentals/maintenance/route"
	roomRoute "dormku_backend/internals/features/rentals/rooms/route"
	tenantRoute "dormku_backend/internals/features/rentals/tenants/route"
	utilityRoute "dormku_backend/internals/features/rentals/utilities/route"
	"dormku_backend/internals/mq"
)

func RentalUserRoutes(user fiber.Router, db *gorm.DB, pub mq.Publisher) {
	maintenanceRoute.MaintenanceUserRoutes(user, db, pub)
}

func RentalAdminRoutes(admin fiber.Router, db *gorm.DB, pub mq.Publisher) {
	buildingRoute.BuildingAdminRoutes(admin, db)
	roomRoute.RoomAdminRoutes(admin, db)
	tenantRoute.TenantAdminRoutes(admin, db)
	utilityRoute.UtilityAdminRoutes(admin, db)
	maintenanceRoute.MaintenanceAdminRoutes(admin, db, pub)
}
