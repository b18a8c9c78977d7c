package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fineController "github.com/TilakCSE/Smart-Library-System/internals/features/library/fines/controller"
)

func FineRoutes(api fiber.Router, db *gorm.DB, userGuard []fiber.Handler, staffGuard []fiber.Handler) {
	ctrl := fineController.NewFineController(db)

	api.Post("/fines/add", append(staffGuard, ctrl.Add)...)
	api.Patch("/fines/:id/pay", append(staffGuard, ctrl.Pay)...)
	api.Get("/u/fines", append(userGuard, ctrl.ListMine)...)
}
