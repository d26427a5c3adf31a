package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	maintenanceController "dormku_backend/internals/features/rentals/maintenance/controller"
	"dormku_backend/internals/mq"
)

func MaintenanceUserRoutes(user fiber.Router, db *gorm.DB, pub mq.Publisher) {
	ctl := maintenanceController.NewMaintenanceController(db, pub)

	g := user.Group("/maintenance-requests")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.ListMine)
}

func MaintenanceAdminRoutes(admin fiber.Router, db *gorm.DB, pub mq.Publisher) {
	ctl := maintenanceController.NewMaintenanceController(db, pub)

	g := admin.Group("/maintenance-requests")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Put("/:id/status", ctl.UpdateStatus)
	g.Delete("/:id", ctl.Delete)
}
