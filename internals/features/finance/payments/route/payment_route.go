package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "dormku_backend/internals/features/finance/payments/controller"
	"dormku_backend/internals/mq"
)

func PaymentUserRoutes(user fiber.Router, db *gorm.DB, pub mq.Publisher) {
	ctl := paymentController.NewPaymentController(db, pub)

	g := user.Group("/payments")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.ListMine)
}

func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB, pub mq.Publisher) {
	ctl := paymentController.NewPaymentController(db, pub)

	g := admin.Group("/payments")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Put("/:id/approve", ctl.Approve)
	g.Put("/:id/reject", ctl.Reject)
	g.Delete("/:id", ctl.Delete)
}
