package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/internal/service"
	"github.com/pawmemo/pawmemo-backend/pkg/utils"
)

type AuthHandler struct {
	auth      *service.AuthService
	validator *utils.Validator
}

func NewAuthHandler(auth *service.AuthService, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		validator: validator,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.auth.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse("Email already registered"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Registration failed"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(user, "User registered successfully"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	resp, err := h.auth.Login(req, c.IP(), c.Get("User-Agent"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid email or password"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Login failed"))
	}

	return c.JSON(models.SuccessResponse(resp, "Login successful"))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals("sessionToken").(string)
	if err := h.auth.Logout(token); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Logout failed"))
	}
	return c.JSON(models.SuccessResponse(nil, "Logged out"))
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req models.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.auth.VerifyEmail(req.Token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid or expired verification token"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Verification failed"))
	}

	return c.JSON(models.SuccessResponse(user, "Email verified"))
}

func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var req models.ResendVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.auth.ResendVerification(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("No account with that email"))
		case errors.Is(err, service.ErrAlreadyVerified):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Email already verified"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not resend verification email"))
	}

	return c.JSON(models.SuccessResponse(nil, "Verification email sent"))
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.auth.ForgotPassword(req.Email); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not process request"))
	}

	// Same answer whether or not the email exists.
	return c.JSON(models.SuccessResponse(nil, "If the email exists, a reset link has been sent"))
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req models.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.auth.ResetPassword(req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid or expired reset token"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Password reset failed"))
	}

	return c.JSON(models.SuccessResponse(nil, "Password reset successful"))
}
