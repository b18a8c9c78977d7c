package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "github.com/TilakCSE/Smart-Library-System/internals/features/users/auth/service"
	userDTO "github.com/TilakCSE/Smart-Library-System/internals/features/users/user/dto"
	userModel "github.com/TilakCSE/Smart-Library-System/internals/features/users/user/model"
	helpers "github.com/TilakCSE/Smart-Library-System/internals/helpers"
	authMw "github.com/TilakCSE/Smart-Library-System/internals/middlewares/auth"
)

type AuthController struct {
	DB       *gorm.DB
	Verifier authService.TokenVerifier
}

func NewAuthController(db *gorm.DB, verifier authService.TokenVerifier) *AuthController {
	return &AuthController{DB: db, Verifier: verifier}
}

// POST /auth/google
func (h *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return authService.LoginGoogle(h.DB, h.Verifier, c)
}

// POST /auth/register
func (h *AuthController) Register(c *fiber.Ctx) error {
	return authService.Register(h.DB, c)
}

// POST /auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	return authService.Login(h.DB, c)
}

// GET /u/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := authMw.GetUserID(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	return helpers.JsonOK(c, "ok", userDTO.FromModel(user))
}
