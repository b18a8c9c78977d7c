package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gateModel "github.com/TilakCSE/Smart-Library-System/internals/features/library/gate/model"
	userModel "github.com/TilakCSE/Smart-Library-System/internals/features/users/user/model"
	helper "github.com/TilakCSE/Smart-Library-System/internals/helpers"
)

type GateController struct {
	DB *gorm.DB
}

func NewGateController(db *gorm.DB) *GateController {
	return &GateController{DB: db}
}

/* =========================================================
   RECORD
   POST /gate/log
   Called by the gate reader. Unknown or inactive users are
   recorded as denied, not rejected as an error.
   ========================================================= */
func (h *GateController) Record(c *fiber.Ctx) error {
	var req struct {
		UserEmail  string `json:"user_email"`
		AccessType string `json:"access_type"` // entry | exit
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	accessType := gateModel.AccessType(strings.TrimSpace(req.AccessType))
	if !accessType.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "access_type must be entry or exit")
	}

	entry := gateModel.GateLogModel{
		AccessType: accessType,
		Status:     gateModel.AccessGranted,
		Timestamp:  time.Now().UTC(),
	}

	var user userModel.UserModel
	err := h.DB.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(req.UserEmail))).First(&user).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		reason := gateModel.DenialReasonUnknownUser
		entry.Status = gateModel.AccessDenied
		entry.DenialReason = &reason
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	case !user.IsActive:
		reason := gateModel.DenialReasonUserInactive
		entry.Status = gateModel.AccessDenied
		entry.DenialReason = &reason
		entry.UserID = &user.ID
	default:
		entry.UserID = &user.ID
	}

	if err := h.DB.Create(&entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record gate event")
	}

	return helper.JsonCreated(c, "Gate event recorded", entry)
}

/* =========================================================
   LIST
   GET /gate/logs  (staff)
   ========================================================= */
func (h *GateController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	q := h.DB.Model(&gateModel.GateLogModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load gate logs")
	}

	var rows []gateModel.GateLogModel
	if err := q.Order("timestamp DESC").Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load gate logs")
	}

	return helper.JsonList(c, "ok", rows,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
