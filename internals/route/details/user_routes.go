package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationRoute "dormku_backend/internals/features/notifications/route"
	authRoute "dormku_backend/internals/features/users/auth/route"
)

func AuthPublicRoutes(api fiber.Router, db *gorm.DB) {
	authRoute.AuthPublicRoutes(api, db)
}

func UserRoutes(user fiber.Router, db *gorm.DB) {
	authRoute.AuthUserRoutes(user, db)
	notificationRoute.NotificationUserRoutes(user, db)
}

func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	authRoute.AuthAdminRoutes(admin, db)
	notificationRoute.NotificationAdminRoutes(admin, db)
}
