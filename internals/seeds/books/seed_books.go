package books

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/TilakCSE/Smart-Library-System/internals/features/library/books/model"
)

type BookSeed struct {
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	ISBN            string   `json:"isbn"`
	Category        string   `json:"category"`
	Description     *string  `json:"description,omitempty"`
	UnityLocationID *string  `json:"unity_location_id,omitempty"`
	RFIDTags        []string `json:"rfid_tags"`
}

// SeedBooksFromJSON inserts books plus their physical copies, skipping ISBNs
// that already exist.
func SeedBooksFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading book seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Failed to read JSON file: %v", err)
	}

	var inputs []BookSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Failed to decode JSON: %v", err)
	}

	for _, data := range inputs {
		var existing model.BookModel
		if err := db.Where("isbn = ?", data.ISBN).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Book with ISBN '%s' already exists, skipped.", data.ISBN)
			continue
		}

		book := model.BookModel{
			Title:           data.Title,
			Author:          data.Author,
			ISBN:            data.ISBN,
			Category:        data.Category,
			Description:     data.Description,
			UnityLocationID: data.UnityLocationID,
		}
		if err := db.Create(&book).Error; err != nil {
			log.Printf("❌ Failed to insert book '%s': %v", data.Title, err)
			continue
		}

		for _, tag := range data.RFIDTags {
			tag := tag
			copyRow := model.BookCopyModel{
				BookID:    book.ID,
				RFIDTag:   &tag,
				Status:    model.CopyStatusAvailable,
				Condition: "good",
			}
			if err := db.Create(&copyRow).Error; err != nil {
				log.Printf("❌ Failed to insert copy '%s': %v", tag, err)
			}
		}
		log.Printf("✅ Inserted book '%s' with %d copies", data.Title, len(data.RFIDTags))
	}
}
