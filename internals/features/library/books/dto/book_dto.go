package dto

import (
	"strings"

	"github.com/google/uuid"

	"github.com/TilakCSE/Smart-Library-System/internals/features/library/books/model"
)

type CreateBookRequest struct {
	Title           string  `json:"title" validate:"required,min=1,max=255"`
	Author          string  `json:"author" validate:"required,min=1,max=255"`
	ISBN            string  `json:"isbn" validate:"required,min=1,max=32"`
	Category        string  `json:"category" validate:"required,min=1,max=100"`
	Description     *string `json:"description,omitempty"`
	CoverImageURL   *string `json:"cover_image_url,omitempty"`
	UnityLocationID *string `json:"unity_location_id,omitempty"`
}

func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.ISBN = strings.TrimSpace(r.ISBN)
	r.Category = strings.TrimSpace(r.Category)
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		if d == "" {
			r.Description = nil
		} else {
			r.Description = &d
		}
	}
}

func (r CreateBookRequest) ToModel() model.BookModel {
	return model.BookModel{
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		Category:        r.Category,
		Description:     r.Description,
		CoverImageURL:   r.CoverImageURL,
		UnityLocationID: r.UnityLocationID,
	}
}

type CreateCopyRequest struct {
	RFIDTag   *string `json:"rfid_tag,omitempty"`
	Condition string  `json:"condition"`
}

type UpdateCopyRequest struct {
	Condition *string `json:"condition,omitempty"`
	Status    *string `json:"status,omitempty"` // only "lost" is accepted here
}

type BookResponse struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Author          string         `json:"author"`
	ISBN            string         `json:"isbn"`
	Category        string         `json:"category"`
	Description     *string        `json:"description,omitempty"`
	CoverImageURL   *string        `json:"cover_image_url,omitempty"`
	UnityLocationID *string        `json:"unity_location_id,omitempty"`
	Copies          []CopyResponse `json:"copies,omitempty"`
}

type CopyResponse struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"book_id"`
	RFIDTag   *string   `json:"rfid_tag,omitempty"`
	Status    string    `json:"status"`
	Condition string    `json:"condition"`
}

func FromModel(b model.BookModel) BookResponse {
	resp := BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Category:        b.Category,
		Description:     b.Description,
		CoverImageURL:   b.CoverImageURL,
		UnityLocationID: b.UnityLocationID,
	}
	for _, copyRow := range b.Copies {
		resp.Copies = append(resp.Copies, FromCopyModel(copyRow))
	}
	return resp
}

func FromCopyModel(cp model.BookCopyModel) CopyResponse {
	return CopyResponse{
		ID:        cp.ID,
		BookID:    cp.BookID,
		RFIDTag:   cp.RFIDTag,
		Status:    string(cp.Status),
		Condition: cp.Condition,
	}
}

func FromModels(books []model.BookModel) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, FromModel(b))
	}
	return out
}
