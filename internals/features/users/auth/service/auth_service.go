package service

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/TilakCSE/Smart-Library-System/internals/constants"
	userDTO "github.com/TilakCSE/Smart-Library-System/internals/features/users/user/dto"
	userModel "github.com/TilakCSE/Smart-Library-System/internals/features/users/user/model"
	helpers "github.com/TilakCSE/Smart-Library-System/internals/helpers"
)

func nowUTC() time.Time { return time.Now().UTC() }

/* ==========================
   LOGIN (identity provider)
========================== */

// LoginGoogle verifies a Firebase/Google ID token, upserts the user on first
// verification, and issues an app access token.
func LoginGoogle(db *gorm.DB, verifier TokenVerifier, c *fiber.Ctx) error {
	if verifier == nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Identity verifier not initialized")
	}

	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	identity, err := verifier.Verify(input.IDToken)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid ID token")
	}

	var user userModel.UserModel
	err = db.Where("firebase_uid = ?", identity.Subject).First(&user).Error
	switch {
	case err == nil:
		// Refresh descriptive fields on every login.
		updates := map[string]any{}
		if identity.Email != "" && identity.Email != user.Email {
			updates["email"] = identity.Email
		}
		if identity.FullName != "" && identity.FullName != user.FullName {
			updates["full_name"] = identity.FullName
		}
		if len(updates) > 0 {
			if uerr := db.Model(&user).Updates(updates).Error; uerr != nil {
				low := strings.ToLower(uerr.Error())
				if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
					return helpers.JsonError(c, fiber.StatusBadRequest, "Email already registered")
				}
				return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
			}
		}
	case err == gorm.ErrRecordNotFound:
		uid := identity.Subject
		user = userModel.UserModel{
			FirebaseUID: &uid,
			Email:       identity.Email,
			FullName:    identity.FullName,
			Role:        constants.RoleStudent,
			IsActive:    true,
			CreatedAt:   nowUTC(),
			UpdatedAt:   nowUTC(),
		}
		if cerr := db.Create(&user).Error; cerr != nil {
			low := strings.ToLower(cerr.Error())
			if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
				return helpers.JsonError(c, fiber.StatusBadRequest, "Email already registered")
			}
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
		}
	default:
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}

	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Account disabled. Contact the library admin.")
	}

	access, err := IssueAccessToken(user)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	return helpers.JsonOK(c, "Login successful", fiber.Map{
		"access_token": access,
		"user":         userDTO.FromModel(user),
	})
}

/* ==========================
   REGISTER / LOGIN (staff)
========================== */

// Register creates a staff account with an email+password credential.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(input.Password) < 8 {
		return helpers.JsonValidationError(c, map[string][]string{
			"password": {"must be at least 8 characters"},
		})
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		FullName:  strings.TrimSpace(input.FullName),
		Password:  &hash,
		Role:      constants.RoleLibrarian,
		IsActive:  true,
		CreatedAt: nowUTC(),
		UpdatedAt: nowUTC(),
	}
	if err := user.Validate(); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := db.Create(&user).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Email already registered")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helpers.JsonCreated(c, "Registration successful", userDTO.FromModel(user))
}

// Login authenticates a staff account by email+password.
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var user userModel.UserModel
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if user.Password == nil || !CheckPassword(*user.Password, input.Password) {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Account disabled. Contact the library admin.")
	}

	access, err := IssueAccessToken(user)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	return helpers.JsonOK(c, "Login successful", fiber.Map{
		"access_token": access,
		"user":         userDTO.FromModel(user),
	})
}
