package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccessType string

const (
	AccessEntry AccessType = "entry"
	AccessExit  AccessType = "exit"
)

func (t AccessType) Valid() bool {
	return t == AccessEntry || t == AccessExit
}

type AccessResult string

const (
	AccessGranted AccessResult = "granted"
	AccessDenied  AccessResult = "denied"
)

type DenialReason string

const (
	DenialReasonUnknownUser  DenialReason = "unknown_user"
	DenialReasonUserInactive DenialReason = "user_inactive"
)

// GateLogModel is one physical-access audit record at the library gate.
type GateLogModel struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       *uuid.UUID    `gorm:"type:uuid;index" json:"user_id,omitempty"`
	AccessType   AccessType    `gorm:"type:varchar(10);not null" json:"access_type"`
	Status       AccessResult  `gorm:"type:varchar(10);not null" json:"status"`
	DenialReason *DenialReason `gorm:"type:varchar(30)" json:"denial_reason,omitempty"`
	Timestamp    time.Time     `gorm:"not null;index" json:"timestamp"`
}

func (GateLogModel) TableName() string {
	return "gate_logs"
}

func (g *GateLogModel) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
