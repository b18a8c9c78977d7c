package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	lendingDTO "github.com/TilakCSE/Smart-Library-System/internals/features/library/lending/dto"
	lendingService "github.com/TilakCSE/Smart-Library-System/internals/features/library/lending/service"
	userModel "github.com/TilakCSE/Smart-Library-System/internals/features/users/user/model"
	helper "github.com/TilakCSE/Smart-Library-System/internals/helpers"
	authMw "github.com/TilakCSE/Smart-Library-System/internals/middlewares/auth"
)

type TransactionController struct {
	DB      *gorm.DB
	Service *lendingService.LendingService
}

func NewTransactionController(db *gorm.DB) *TransactionController {
	return &TransactionController{
		DB:      db,
		Service: lendingService.NewLendingService(db),
	}
}

/* =========================================================
   ISSUE
   POST /transactions/issue
   Body: {user_email, rfid_tag, days}; query params accepted as fallback.
   ========================================================= */
func (h *TransactionController) Issue(c *fiber.Ctx) error {
	var req lendingDTO.IssueRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.UserEmail == "" {
		req.UserEmail = strings.TrimSpace(c.Query("user_email"))
	}
	if req.RFIDTag == "" {
		req.RFIDTag = strings.TrimSpace(c.Query("rfid_tag"))
	}
	if req.Days == 0 {
		if d := strings.TrimSpace(c.Query("days")); d != "" {
			req.Days, _ = strconv.Atoi(d)
		} else {
			req.Days = lendingService.DefaultLoanDays
		}
	}

	loan, err := h.Service.Issue(c.UserContext(), req.UserEmail, req.RFIDTag, req.Days)
	if err != nil {
		return mapLendingError(c, err)
	}

	var borrower userModel.UserModel
	name := req.UserEmail
	if lerr := h.DB.Where("id = ?", loan.UserID).First(&borrower).Error; lerr == nil {
		name = borrower.FullName
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "success",
		"message":  "Book issued to " + name,
		"due_date": loan.DueDate.UTC(),
	})
}

/* =========================================================
   RETURN
   POST /transactions/return
   ========================================================= */
func (h *TransactionController) Return(c *fiber.Ctx) error {
	var req lendingDTO.ReturnRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.RFIDTag == "" {
		req.RFIDTag = strings.TrimSpace(c.Query("rfid_tag"))
	}

	loan, err := h.Service.Return(c.UserContext(), req.RFIDTag)
	if err != nil {
		return mapLendingError(c, err)
	}

	return helper.JsonOK(c, "Book returned", lendingDTO.FromModel(loan))
}

/* =========================================================
   MY LOANS
   GET /u/transactions
   ========================================================= */
func (h *TransactionController) ListMine(c *fiber.Ctx) error {
	userID, err := authMw.GetUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.Service.ListByUser(c.UserContext(), userID, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load transactions")
	}

	return helper.JsonList(c, "ok", lendingDTO.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func mapLendingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, lendingService.ErrUserNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, lendingService.ErrCopyNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Book copy not found")
	case errors.Is(err, lendingService.ErrCopyUnavailable):
		return helper.JsonError(c, fiber.StatusBadRequest, "Book is already issued or lost")
	case errors.Is(err, lendingService.ErrNoActiveLoan):
		return helper.JsonError(c, fiber.StatusNotFound, "No active loan for this copy")
	case errors.Is(err, lendingService.ErrInvalidLoanPeriod):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process transaction")
	}
}
