package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dormku_backend/internals/constants"
	authMiddleware "dormku_backend/internals/middlewares/auth"
	"dormku_backend/internals/mq"
	routeDetails "dormku_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes wires the three surfaces:
//
//	/api      — public (login, health)
//	/api/u    — any authenticated user (tenant self-service)
//	/api/a    — admin only
func SetupRoutes(app *fiber.App, db *gorm.DB, pub mq.Publisher) {
	startTime = time.Now()

	BaseRoutes(app)

	api := app.Group("/api")

	log.Println("[INFO] Setting up PUBLIC routes...")
	routeDetails.AuthPublicRoutes(api, db)

	log.Println("[INFO] Setting up USER group (/api/u)...")
	user := api.Group("/u", authMiddleware.AuthMiddleware())

	log.Println("[INFO] Setting up ADMIN group (/api/a)...")
	admin := api.Group("/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Admin access required", constants.RoleAdmin),
	)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(user, db)
	routeDetails.UserAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Rental routes...")
	routeDetails.RentalUserRoutes(user, db, pub)
	routeDetails.RentalAdminRoutes(admin, db, pub)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceUserRoutes(user, db, pub)
	routeDetails.FinanceAdminRoutes(admin, db, pub)
}
