package model

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Validator instance
var validate = validator.New()

// UserModel represents the users table. A row is created on first successful
// identity-provider verification; staff accounts may also carry a password
// hash for the email+password path.
type UserModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirebaseUID *string   `gorm:"size:128;uniqueIndex" json:"firebase_uid,omitempty"`
	Email       string    `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	FullName    string    `gorm:"size:100;not null" json:"full_name" validate:"required,min=2,max=100"`
	Password    *string   `gorm:"size:255" json:"-"`
	Role        string    `gorm:"type:varchar(20);not null;default:'student'" json:"role" validate:"omitempty,oneof=student librarian admin"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = "student"
	}
}

// Validate checks the row against the field rules above.
func (u *UserModel) Validate() error {
	u.SetDefaultValues()
	return validate.Struct(u)
}
