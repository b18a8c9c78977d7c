package seeds

import (
	"gorm.io/gorm"

	books "github.com/TilakCSE/Smart-Library-System/internals/seeds/books"
	users "github.com/TilakCSE/Smart-Library-System/internals/seeds/users"
)

func RunAllSeeds(db *gorm.DB) {
	books.SeedBooksFromJSON(db, "internals/seeds/books/data_books.json")
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
}
