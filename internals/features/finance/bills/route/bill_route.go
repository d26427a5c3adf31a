package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billController "dormku_backend/internals/features/finance/bills/controller"
	"dormku_backend/internals/mq"
)

func BillUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := billController.NewBillController(db, nil)

	g := user.Group("/bills")
	g.Get("/", ctl.ListMine)
	g.Get("/:id", ctl.GetMine)
}

func BillAdminRoutes(admin fiber.Router, db *gorm.DB, pub mq.Publisher) {
	ctl := billController.NewBillController(db, pub)

	g := admin.Group("/bills")
	g.Post("/", ctl.Create)
	g.Post("/generate-monthly", ctl.GenerateMonthly)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Put("/:id/status", ctl.UpdateStatus)
	g.Delete("/:id", ctl.Delete)
}
