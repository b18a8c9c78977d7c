package model

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

// BookModel represents one catalog entry. ISBN is globally unique;
// descriptive fields stay mutable after registration.
type BookModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title" validate:"required,min=1,max=255"`
	Author          string    `gorm:"size:255;not null" json:"author" validate:"required,min=1,max=255"`
	ISBN            string    `gorm:"size:32;uniqueIndex;not null" json:"isbn" validate:"required,min=1,max=32"`
	Category        string    `gorm:"size:100;not null" json:"category" validate:"required,min=1,max=100"`
	Description     *string   `gorm:"type:text" json:"description,omitempty"`
	CoverImageURL   *string   `gorm:"size:512" json:"cover_image_url,omitempty"`
	UnityLocationID *string   `gorm:"size:100" json:"unity_location_id,omitempty"`

	Copies []BookCopyModel `gorm:"foreignKey:BookID" json:"copies,omitempty"`
}

func (BookModel) TableName() string {
	return "books"
}

func (b *BookModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *BookModel) Validate() error {
	return validate.Struct(b)
}
