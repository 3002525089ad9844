package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/internal/service"
)

type TierHandler struct {
	tiers *service.TierService
}

func NewTierHandler(tiers *service.TierService) *TierHandler {
	return &TierHandler{tiers: tiers}
}

func (h *TierHandler) GetAll(c *fiber.Ctx) error {
	tiers, err := h.tiers.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not load tiers"))
	}
	return c.JSON(models.SuccessResponse(tiers, ""))
}

func (h *TierHandler) GetByLevel(c *fiber.Ctx) error {
	level, err := strconv.Atoi(c.Params("level"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid tier level"))
	}

	tier, err := h.tiers.GetByLevel(level)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Tier not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not load tier"))
	}
	return c.JSON(models.SuccessResponse(tier, ""))
}
