package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	roomController "dormku_backend/internals/features/rentals/rooms/controller"
)

func RoomAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := roomController.NewRoomController(db)

	g := admin.Group("/rooms")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
