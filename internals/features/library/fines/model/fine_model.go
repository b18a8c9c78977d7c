package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FineReason string

const (
	FineReasonLateReturn FineReason = "late_return"
	FineReasonDamage     FineReason = "damage"
)

func (r FineReason) Valid() bool {
	return r == FineReasonLateReturn || r == FineReasonDamage
}

// FineModel is a monetary penalty tied to a user. Fines are assessed manually
// by staff; nothing computes them automatically on late return.
type FineModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount    float64    `gorm:"not null" json:"amount"`
	Reason    FineReason `gorm:"type:varchar(20);not null" json:"reason"`
	IsPaid    bool       `gorm:"not null;default:false" json:"is_paid"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (FineModel) TableName() string {
	return "fines"
}

func (f *FineModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
