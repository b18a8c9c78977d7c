package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "github.com/TilakCSE/Smart-Library-System/internals/features/users/auth/controller"
	authService "github.com/TilakCSE/Smart-Library-System/internals/features/users/auth/service"
	middlewares "github.com/TilakCSE/Smart-Library-System/internals/middlewares"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db, authService.DefaultVerifier())

	auth := app.Group("/api/v1/auth")
	auth.Post("/google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	auth.Post("/register", middlewares.LoginRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
}
