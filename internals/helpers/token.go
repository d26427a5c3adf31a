package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dormku_backend/internals/constants"
)

// Locals keys set by the auth middleware.
const (
	LocalsUserID   = "user_id"
	LocalsRole     = "userRole"
	LocalsTenantID = "tenant_id"
)

// GetUserIDFromToken reads the authenticated user id stored by the
// auth middleware.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocalsUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user ID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid user ID")
	}
	return id, nil
}

func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals(LocalsRole).(string)
	if !ok || role == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing role information")
	}
	return role, nil
}

// GetTenantIDFromToken resolves the tenant the caller is linked to.
// Admin tokens carry no tenant id.
func GetTenantIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocalsTenantID).(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "No tenant linked to this account")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Invalid tenant link on this account")
	}
	return id, nil
}

func IsAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals(LocalsRole).(string)
	return role == constants.RoleAdmin
}
