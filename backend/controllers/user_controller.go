package controllers

import (
	"coursework/backend/middleware"
	"coursework/backend/models"
	"coursework/backend/services"
	"coursework/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Profiles *services.ProfileService
}

func NewUserController(profiles *services.ProfileService) *UserController {
	return &UserController{Profiles: profiles}
}

// ChangePasswordRequest represents password change data
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password" example:"oldpassword"`
	NewPassword string `json:"new_password" form:"new_password" example:"newsecurepassword"`
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the account, its student or teacher profile and the held topic
// @Tags users
// @Produce json
// @Success 200 {object} services.Profile
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	profile, err := uc.Profiles.Profile(user)
	if err != nil {
		return apiFailure(c, err)
	}
	// студент без профиля: аккаунт есть, данных нет
	if user.Role == models.RoleStudent && profile.Student == nil {
		return utils.NotFound(c, "Student profile not found")
	}
	return utils.Success(c, fiber.StatusOK, profile)
}

// ChangePassword godoc
// @Summary Change password
// @Description Replaces the password of the authenticated account
// @Tags users
// @Accept json
// @Produce json
// @Param input body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/profile/password [put]
func (uc *UserController) ChangePassword(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input ChangePasswordRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}

	if err := uc.Profiles.ChangePassword(user, input.OldPassword, input.NewPassword); err != nil {
		return apiFailure(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Password updated successfully",
	})
}
