package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billRoute "dormku_backend/internals/features/finance/bills/route"
	paymentRoute "dormku_backend/internals/features/finance/payments/route"
	"dormku_backend/internals/mq"
)

func FinanceUserRoutes(user fiber.Router, db *gorm.DB, pub mq.Publisher) {
	billRoute.BillUserRoutes(user, db)
	paymentRoute.PaymentUserRoutes(user, db, pub)
}

func FinanceAdminRoutes(admin fiber.Router, db *gorm.DB, pub mq.Publisher) {
	billRoute.BillAdminRoutes(admin, db, pub)
	paymentRoute.PaymentAdminRoutes(admin, db, pub)
}
