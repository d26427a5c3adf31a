package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	utilityController "dormku_backend/internals/features/rentals/utilities/controller"
)

func UtilityAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := utilityController.NewRoomUtilityController(db)

	g := admin.Group("/utilities")
	g.Post("/", ctl.Record)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Put("/:id", ctl.Update)
}
