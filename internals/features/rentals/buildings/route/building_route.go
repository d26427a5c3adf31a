package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	buildingController "dormku_backend/internals/features/rentals/buildings/controller"
)

func BuildingAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := buildingController.NewBuildingController(db)

	g := admin.Group("/buildings")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
