package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CopyStatus is the lending state of one physical copy.
type CopyStatus string

const (
	CopyStatusAvailable CopyStatus = "available"
	CopyStatusIssued    CopyStatus = "issued"
	CopyStatusLost      CopyStatus = "lost"
)

func (s CopyStatus) Valid() bool {
	switch s {
	case CopyStatusAvailable, CopyStatusIssued, CopyStatusLost:
		return true
	}
	return false
}

// BookCopyModel is one physical instance of a book, tracked by RFID tag.
// Status transitions only along available → issued → (available | lost);
// the lending ledger owns all writes to Status.
type BookCopyModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BookID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"book_id"`
	RFIDTag   *string    `gorm:"column:rfid_tag;size:100;uniqueIndex" json:"rfid_tag,omitempty"`
	Status    CopyStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	Condition string     `gorm:"size:100;not null;default:'good'" json:"condition"`
}

func (BookCopyModel) TableName() string {
	return "book_copies"
}

func (c *BookCopyModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
