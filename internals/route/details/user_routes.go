package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "github.com/TilakCSE/Smart-Library-System/internals/features/users/auth/controller"
	authService "github.com/TilakCSE/Smart-Library-System/internals/features/users/auth/service"
)

func UserRoutes(api fiber.Router, db *gorm.DB, userGuard []fiber.Handler) {
	ctrl := authController.NewAuthController(db, authService.DefaultVerifier())

	api.Get("/u/me", append(userGuard, ctrl.Me)...)
}
