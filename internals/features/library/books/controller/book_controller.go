package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bookDTO "github.com/TilakCSE/Smart-Library-System/internals/features/library/books/dto"
	bookModel "github.com/TilakCSE/Smart-Library-System/internals/features/library/books/model"
	lendingService "github.com/TilakCSE/Smart-Library-System/internals/features/library/lending/service"
	helper "github.com/TilakCSE/Smart-Library-System/internals/helpers"
)

type BookController struct {
	DB      *gorm.DB
	Lending *lendingService.LendingService
}

func NewBookController(db *gorm.DB) *BookController {
	return &BookController{
		DB:      db,
		Lending: lendingService.NewLendingService(db),
	}
}

/* =========================================================
   SEARCH
   GET /books/?query=&page=&per_page=
   Matching is case-insensitive on title OR author.
   Responds with a plain JSON array of books.
   ========================================================= */
func (h *BookController) Search(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&bookModel.BookModel{})
	if query := strings.TrimSpace(c.Query("query")); query != "" {
		needle := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", needle, needle)
	}

	var books []bookModel.BookModel
	if err := q.Order("title ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&books).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to search books")
	}

	return c.Status(fiber.StatusOK).JSON(bookDTO.FromModels(books))
}

/* =========================================================
   REGISTER
   POST /books/add
   ========================================================= */
func (h *BookController) Add(c *fiber.Ctx) error {
	var req bookDTO.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()

	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var created bookModel.BookModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&bookModel.BookModel{}).
			Where("isbn = ?", req.ISBN).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check ISBN")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Book with this ISBN already exists.")
		}

		m := req.ToModel()
		if err := tx.Create(&m).Error; err != nil {
			msg := strings.ToLower(err.Error())
			if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
				return fiber.NewError(fiber.StatusBadRequest, "Book with this ISBN already exists.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to register book")
		}
		created = m
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"book_id": created.ID.String(),
		"message": "Asset Registered in Vault",
	})
}

/* =========================================================
   GET BY ID
   GET /books/:id
   ========================================================= */
func (h *BookController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid book id")
	}

	var book bookModel.BookModel
	if err := h.DB.Preload("Copies").Where("id = ?", id).First(&book).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load book")
	}

	return helper.JsonOK(c, "ok", bookDTO.FromModel(book))
}

/* =========================================================
   ADD COPY
   POST /books/:id/copies  (staff)
   ========================================================= */
func (h *BookController) AddCopy(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid book id")
	}

	var req bookDTO.CreateCopyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.RFIDTag != nil {
		tag := strings.TrimSpace(*req.RFIDTag)
		if tag == "" {
			req.RFIDTag = nil
		} else {
			req.RFIDTag = &tag
		}
	}
	if strings.TrimSpace(req.Condition) == "" {
		req.Condition = "good"
	}

	var created bookModel.BookCopyModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&bookModel.BookModel{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check book")
		}
		if count == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Book not found")
		}

		m := bookModel.BookCopyModel{
			BookID:    bookID,
			RFIDTag:   req.RFIDTag,
			Status:    bookModel.CopyStatusAvailable,
			Condition: req.Condition,
		}
		if err := tx.Create(&m).Error; err != nil {
			msg := strings.ToLower(err.Error())
			if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
				return fiber.NewError(fiber.StatusConflict, "RFID tag already registered")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to register copy")
		}
		created = m
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Copy registered", bookDTO.FromCopyModel(created))
}

/* =========================================================
   UPDATE COPY
   PATCH /copies/:id  (staff)
   Condition is free-text; status may only be forced to "lost" here.
   The lending ledger owns every other status write.
   ========================================================= */
func (h *BookController) UpdateCopy(c *fiber.Ctx) error {
	copyID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid copy id")
	}

	var req bookDTO.UpdateCopyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	markLost := false
	if req.Status != nil {
		if bookModel.CopyStatus(*req.Status) != bookModel.CopyStatusLost {
			return helper.JsonError(c, fiber.StatusBadRequest, "Only 'lost' may be set here")
		}
		markLost = true
	}
	if req.Condition == nil && !markLost {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	var updated bookModel.BookCopyModel
	if err := h.DB.Where("id = ?", copyID).First(&updated).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Copy not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load copy")
	}

	if req.Condition != nil {
		if err := h.DB.Model(&updated).Update("condition", strings.TrimSpace(*req.Condition)).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update copy")
		}
	}

	// Lost-marking goes through the lending ledger: the copy write and the
	// closing of any active loan happen in one transaction.
	if markLost {
		lost, err := h.Lending.MarkLost(c.UserContext(), copyID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update copy")
		}
		updated.Status = lost.Status
	}

	return helper.JsonUpdated(c, "Copy updated", bookDTO.FromCopyModel(updated))
}
