package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	fineDTO "github.com/TilakCSE/Smart-Library-System/internals/features/library/fines/dto"
	fineModel "github.com/TilakCSE/Smart-Library-System/internals/features/library/fines/model"
	userModel "github.com/TilakCSE/Smart-Library-System/internals/features/users/user/model"
	helper "github.com/TilakCSE/Smart-Library-System/internals/helpers"
	authMw "github.com/TilakCSE/Smart-Library-System/internals/middlewares/auth"
)

type FineController struct {
	DB *gorm.DB
}

func NewFineController(db *gorm.DB) *FineController {
	return &FineController{DB: db}
}

/* =========================================================
   CREATE
   POST /fines/add  (staff)
   ========================================================= */
func (h *FineController) Add(c *fiber.Ctx) error {
	var req fineDTO.CreateFineRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Amount <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Amount must be positive")
	}
	reason := fineModel.FineReason(strings.TrimSpace(req.Reason))
	if !reason.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Reason must be late_return or damage")
	}

	var created fineModel.FineModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userModel.UserModel{}).Where("id = ?", req.UserID).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check user")
		}
		if count == 0 {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		created = fineModel.FineModel{
			UserID: req.UserID,
			Amount: req.Amount,
			Reason: reason,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fine")
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Fine recorded", fineDTO.FromModel(created))
}

/* =========================================================
   PAY
   PATCH /fines/:id/pay  (staff)
   ========================================================= */
func (h *FineController) Pay(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid fine id")
	}

	var fine fineModel.FineModel
	if err := h.DB.Where("id = ?", id).First(&fine).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Fine not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load fine")
	}
	if fine.IsPaid {
		return helper.JsonError(c, fiber.StatusConflict, "Fine already paid")
	}

	if err := h.DB.Model(&fine).Update("is_paid", true).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update fine")
	}

	return helper.JsonUpdated(c, "Fine paid", fineDTO.FromModel(fine))
}

/* =========================================================
   MY FINES
   GET /u/fines
   ========================================================= */
func (h *FineController) ListMine(c *fiber.Ctx) error {
	userID, err := authMw.GetUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	q := h.DB.Model(&fineModel.FineModel{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load fines")
	}

	var rows []fineModel.FineModel
	if err := q.Order("created_at DESC").Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load fines")
	}

	return helper.JsonList(c, "ok", fineDTO.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
