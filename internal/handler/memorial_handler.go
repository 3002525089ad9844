package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/internal/service"
	"github.com/pawmemo/pawmemo-backend/pkg/utils"
)

const defaultQRSize = 256

type MemorialHandler struct {
	memorials   *service.MemorialService
	personality *service.PersonalityService
	exports     *service.ExportService
	validator   *utils.Validator
}

func NewMemorialHandler(memorials *service.MemorialService, personality *service.PersonalityService, exports *service.ExportService, validator *utils.Validator) *MemorialHandler {
	return &MemorialHandler{
		memorials:   memorials,
		personality: personality,
		exports:     exports,
		validator:   validator,
	}
}

func (h *MemorialHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req models.MemorialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	memorial, decision, err := h.memorials.Create(userID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not create memorial"))
	}
	if !decision.Allowed {
		return c.JSON(models.DecisionResponse(decision, "Memorial limit reached for your tier"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(memorial, "Memorial created"))
}

func (h *MemorialHandler) GetMyMemorials(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	memorials, err := h.memorials.GetUserMemorials(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not load memorials"))
	}
	return c.JSON(models.SuccessResponse(memorials, ""))
}

func (h *MemorialHandler) Get(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	memorialID := c.Params("id")

	memorial, err := h.memorials.GetOwned(userID, memorialID)
	if err != nil {
		return ownedError(c, err, "Could not load memorial")
	}
	return c.JSON(models.SuccessResponse(memorial, ""))
}

func (h *MemorialHandler) Update(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	memorialID := c.Params("id")

	var req models.UpdateMemorialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	memorial, err := h.memorials.Update(userID, memorialID, req)
	if err != nil {
		return ownedError(c, err, "Could not update memorial")
	}
	return c.JSON(models.SuccessResponse(memorial, "Memorial updated"))
}

func (h *MemorialHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	memorialID := c.Params("id")

	if err := h.memorials.Delete(userID, memorialID); err != nil {
		return ownedError(c, err, "Could not delete memorial")
	}
	return c.JSON(models.SuccessResponse(nil, "Memorial deleted"))
}

// GetPublic serves the visitor-facing memorial page. No auth.
func (h *MemorialHandler) GetPublic(c *fiber.Ctx) error {
	memorial, err := h.memorials.GetPublic(c.Params("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Memorial not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not load memorial"))
	}
	return c.JSON(models.SuccessResponse(memorial, ""))
}

func (h *MemorialHandler) GetQuizQuestions(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(h.personality.Questions(), ""))
}

func (h *MemorialHandler) SubmitQuiz(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	memorialID := c.Params("id")

	var req struct {
		Answers []models.QuizAnswerInput `json:"answers" validate:"required,min=1,dive"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	personalityType, err := h.memorials.SubmitQuiz(userID, memorialID, req.Answers)
	if err != nil {
		return ownedError(c, err, "Could not save quiz answers")
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"personality_type": personalityType,
		"description":      h.personality.Description(personalityType),
	}, "Personality analyzed"))
}

func (h *MemorialHandler) GenerateLetter(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	memorialID := c.Params("id")

	letter, decision, err := h.memorials.GenerateLetter(userID, memorialID)
	if err != nil {
		return ownedError(c, err, "Could not generate letter")
	}
	if !decision.Allowed {
		return c.JSON(models.DecisionResponse(decision, "AI letters require a premium membership"))
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"letter": letter}, "Letter generated"))
}

func (h *MemorialHandler) GetQRCode(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	memorialID := c.Params("id")

	size, err := strconv.Atoi(c.Query("size", strconv.Itoa(defaultQRSize)))
	if err != nil || size < 64 || size > 1024 {
		size = defaultQRSize
	}

	png, err := h.memorials.QRCode(userID, memorialID, size)
	if err != nil {
		return ownedError(c, err, "Could not generate QR code")
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

// LeaveMessage adds a guest-book entry. Public, rate limited at the app
// level.
func (h *MemorialHandler) LeaveMessage(c *fiber.Ctx) error {
	var req models.GuestMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	message, err := h.memorials.LeaveMessage(c.Params("slug"), req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Memorial not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not save message"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(message, "Message saved"))
}

func (h *MemorialHandler) GetMessages(c *fiber.Ctx) error {
	messages, err := h.memorials.GetMessages(c.Params("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Memorial not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not load messages"))
	}
	return c.JSON(models.SuccessResponse(messages, ""))
}

// RequestExport issues a short-lived download token for the memorial
// archive.
func (h *MemorialHandler) RequestExport(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	memorialID := c.Params("id")

	token, decision, err := h.exports.RequestExport(userID, memorialID)
	if err != nil {
		return ownedError(c, err, "Could not prepare export")
	}
	if !decision.Allowed {
		return c.JSON(models.DecisionResponse(decision, "Data export requires a premium membership"))
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"download_token": token}, "Export ready"))
}

// DownloadExport streams the archive for a valid token. The token is the
// auth; no session needed, so the link works from a browser download.
func (h *MemorialHandler) DownloadExport(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Missing download token"))
	}

	archive, filename, err := h.exports.Download(token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid or expired download token"))
		}
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Memorial not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not build export"))
	}

	c.Set("Content-Type", "application/zip")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(archive)
}

// ownedError maps the ownership errors every owner-scoped operation can
// return.
func ownedError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Memorial not found"))
	case errors.Is(err, service.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You do not own this memorial"))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(fallback))
}
