package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	lendingController "github.com/TilakCSE/Smart-Library-System/internals/features/library/lending/controller"
)

// TransactionRoutes mounts the lending ledger endpoints. Issue/return run at
// the circulation desk behind the staff guard; users can list their own loans.
func TransactionRoutes(api fiber.Router, db *gorm.DB, userGuard []fiber.Handler, staffGuard []fiber.Handler) {
	ctrl := lendingController.NewTransactionController(db)

	api.Post("/transactions/issue", append(staffGuard, ctrl.Issue)...)
	api.Post("/transactions/return", append(staffGuard, ctrl.Return)...)
	api.Get("/u/transactions", append(userGuard, ctrl.ListMine)...)
}
