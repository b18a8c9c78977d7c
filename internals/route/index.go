package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/TilakCSE/Smart-Library-System/internals/constants"
	authMw "github.com/TilakCSE/Smart-Library-System/internals/middlewares/auth"
	routeDetails "github.com/TilakCSE/Smart-Library-System/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	api := app.Group("/api/v1")

	// USER → any authenticated account
	userGuard := []fiber.Handler{
		authMw.AuthJWT(authMw.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	}

	// STAFF → librarian/admin only
	staffGuard := []fiber.Handler{
		authMw.AuthJWT(authMw.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		authMw.RequireRoles(constants.StaffRoles...),
	}

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(api, db, userGuard)

	log.Println("[INFO] Mounting Library routes...")
	routeDetails.LibraryRoutes(api, db, userGuard, staffGuard)
}
