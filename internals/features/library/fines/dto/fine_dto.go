package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/TilakCSE/Smart-Library-System/internals/features/library/fines/model"
)

type CreateFineRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Amount float64   `json:"amount"`
	Reason string    `json:"reason"` // late_return | damage
}

type FineResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Amount    float64   `json:"amount"`
	Reason    string    `json:"reason"`
	IsPaid    bool      `json:"is_paid"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModel(f model.FineModel) FineResponse {
	return FineResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		Amount:    f.Amount,
		Reason:    string(f.Reason),
		IsPaid:    f.IsPaid,
		CreatedAt: f.CreatedAt,
	}
}

func FromModels(rows []model.FineModel) []FineResponse {
	out := make([]FineResponse, 0, len(rows))
	for _, f := range rows {
		out = append(out, FromModel(f))
	}
	return out
}
