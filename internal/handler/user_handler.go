package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/internal/service"
	"github.com/pawmemo/pawmemo-backend/pkg/utils"
)

type UserHandler struct {
	users     *service.UserService
	validator *utils.Validator
}

func NewUserHandler(users *service.UserService, validator *utils.Validator) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: validator,
	}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := h.users.GetProfile(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not load profile"))
	}
	return c.JSON(models.SuccessResponse(user, ""))
}

func (h *UserHandler) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	dashboard, err := h.users.GetDashboard(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not load dashboard"))
	}
	return c.JSON(models.SuccessResponse(dashboard, ""))
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.users.ChangePassword(userID, req); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Current password is incorrect"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not change password"))
	}

	return c.JSON(models.SuccessResponse(nil, "Password changed"))
}
