package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookRoute "github.com/TilakCSE/Smart-Library-System/internals/features/library/books/route"
	fineRoute "github.com/TilakCSE/Smart-Library-System/internals/features/library/fines/route"
	gateRoute "github.com/TilakCSE/Smart-Library-System/internals/features/library/gate/route"
	lendingRoute "github.com/TilakCSE/Smart-Library-System/internals/features/library/lending/route"
)

func LibraryRoutes(api fiber.Router, db *gorm.DB, userGuard []fiber.Handler, staffGuard []fiber.Handler) {
	bookRoute.BookRoutes(api, db, staffGuard...)
	lendingRoute.TransactionRoutes(api, db, userGuard, staffGuard)
	fineRoute.FineRoutes(api, db, userGuard, staffGuard)
	gateRoute.GateRoutes(api, db, staffGuard)
}
