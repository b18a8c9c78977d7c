package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/TilakCSE/Smart-Library-System/internals/features/library/lending/model"
)

type IssueRequest struct {
	UserEmail string `json:"user_email"`
	RFIDTag   string `json:"rfid_tag"`
	Days      int    `json:"days"`
}

type ReturnRequest struct {
	RFIDTag string `json:"rfid_tag"`
}

type TransactionResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	CopyID     uuid.UUID  `json:"copy_id"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     string     `json:"status"`
}

func FromModel(t model.TransactionModel) TransactionResponse {
	return TransactionResponse{
		ID:         t.ID,
		UserID:     t.UserID,
		CopyID:     t.CopyID,
		IssueDate:  t.IssueDate.UTC(),
		DueDate:    t.DueDate.UTC(),
		ReturnDate: t.ReturnDate,
		Status:     string(t.Status),
	}
}

func FromModels(rows []model.TransactionModel) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, FromModel(t))
	}
	return out
}
