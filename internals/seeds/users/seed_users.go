package users

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	authService "github.com/TilakCSE/Smart-Library-System/internals/features/users/auth/service"
	"github.com/TilakCSE/Smart-Library-System/internals/features/users/user/model"
)

type UserSeed struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// SeedUsersFromJSON inserts users, skipping emails that already exist.
func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading user seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Failed to read JSON file: %v", err)
	}

	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Failed to decode JSON: %v", err)
	}

	for _, data := range inputs {
		var existing model.UserModel
		if err := db.Where("email = ?", data.Email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ User with email '%s' already exists, skipped.", data.Email)
			continue
		}

		newUser := model.UserModel{
			Email:     data.Email,
			FullName:  data.FullName,
			Role:      data.Role,
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
		if data.Password != "" {
			hash, herr := authService.HashPassword(data.Password)
			if herr != nil {
				log.Printf("❌ Failed to hash password for '%s': %v", data.Email, herr)
				continue
			}
			newUser.Password = &hash
		}

		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("❌ Failed to insert user '%s': %v", data.Email, err)
		} else {
			log.Printf("✅ Inserted user '%s'", data.Email)
		}
	}
}
