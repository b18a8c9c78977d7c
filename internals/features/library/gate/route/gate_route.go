package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gateController "github.com/TilakCSE/Smart-Library-System/internals/features/library/gate/controller"
)

func GateRoutes(api fiber.Router, db *gorm.DB, staffGuard []fiber.Handler) {
	ctrl := gateController.NewGateController(db)

	api.Post("/gate/log", ctrl.Record)
	api.Get("/gate/logs", append(staffGuard, ctrl.List)...)
}
