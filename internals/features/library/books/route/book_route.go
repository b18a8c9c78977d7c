package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookController "github.com/TilakCSE/Smart-Library-System/internals/features/library/books/controller"
)

// BookRoutes mounts the catalog endpoints. Search and detail are public;
// registration endpoints run behind the staff guard.
func BookRoutes(api fiber.Router, db *gorm.DB, staffGuard ...fiber.Handler) {
	ctrl := bookController.NewBookController(db)

	api.Get("/books/", ctrl.Search)
	api.Post("/books/add", append(staffGuard, ctrl.Add)...)
	api.Get("/books/:id", ctrl.GetByID)
	api.Post("/books/:id/copies", append(staffGuard, ctrl.AddCopy)...)
	api.Patch("/copies/:id", append(staffGuard, ctrl.UpdateCopy)...)
}
