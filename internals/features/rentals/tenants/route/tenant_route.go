package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tenantController "dormku_backend/internals/features/rentals/tenants/controller"
)

func TenantAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := tenantController.NewTenantController(db)

	g := admin.Group("/tenants")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
