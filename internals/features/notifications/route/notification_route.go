package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationController "dormku_backend/internals/features/notifications/controller"
)

func NotificationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := notificationController.NewNotificationController(db)

	user.Get("/notifications", ctl.ListMine)
}

func NotificationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := notificationController.NewNotificationController(db)

	admin.Get("/notifications", ctl.List)
}
