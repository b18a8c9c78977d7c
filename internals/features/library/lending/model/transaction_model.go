package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoanStatus is the resolution state of one lending event.
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusCompleted LoanStatus = "completed"
	LoanStatusOverdue   LoanStatus = "overdue"
)

// TransactionModel is one lending event: a copy lent to a user for a bounded
// period. At most one active row may exist per copy; a partial unique index
// on (copy_id) WHERE status='active' backs that invariant in the store.
type TransactionModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CopyID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"copy_id"`
	IssueDate  time.Time  `gorm:"not null" json:"issue_date"`
	DueDate    time.Time  `gorm:"not null" json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     LoanStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
