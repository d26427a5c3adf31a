package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "dormku_backend/internals/features/users/auth/controller"
	rateLimiter "dormku_backend/internals/middlewares"
)

// AuthPublicRoutes mounts the unauthenticated surface. Login gets its own
// tighter rate limit on top of the global one.
func AuthPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	api.Post("/auth/login", rateLimiter.LoginRateLimiter(), ctl.Login)
}

// AuthUserRoutes mounts endpoints for any authenticated caller.
func AuthUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	user.Get("/auth/me", ctl.Me)
}

// AuthAdminRoutes mounts account management for admins.
func AuthAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	admin.Post("/users", ctl.CreateUser)
}
