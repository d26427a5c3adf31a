package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dormku_backend/internals/configs"
	dto "dormku_backend/internals/features/users/auth/dto"
	model "dormku_backend/internals/features/users/auth/model"
	helper "dormku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

const accessTokenTTL = 24 * time.Hour

/* ======================= LOGIN ======================= */
// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var user model.UserModel
	if err := h.DB.
		Where("user_email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, "Account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	expiresAt := time.Now().Add(accessTokenTTL)
	claims := jwt.MapClaims{
		"user_id": user.UserID.String(),
		"role":    user.UserRole,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	if user.UserTenantID != nil {
		claims["tenant_id"] = user.UserTenantID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sign token")
	}

	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		User:        dto.FromUserModel(user),
	})
}

/* ======================= ME ======================= */
// GET /api/u/auth/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user model.UserModel
	if err := h.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromUserModel(user))
}

/* ======================= CREATE USER (admin) ======================= */
// POST /api/a/users
func (h *AuthController) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := model.UserModel{
		UserEmail:    strings.ToLower(strings.TrimSpace(req.Email)),
		UserPassword: string(hash),
		UserRole:     req.Role,
		UserTenantID: req.TenantID,
		UserIsActive: true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Email is already registered")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.JsonCreated(c, "User created", dto.FromUserModel(user))
}
