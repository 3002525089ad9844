package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/internal/service"
)

type PhotoHandler struct {
	photos *service.PhotoService
}

func NewPhotoHandler(photos *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	memorialID := c.Params("id")

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Photo file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Could not read uploaded file"))
	}
	defer file.Close()

	photo, decision, err := h.photos.Upload(userID, memorialID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPhotoTooLarge):
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(models.ErrorResponse("Photo exceeds the 10MB size limit"))
		case errors.Is(err, service.ErrUnsupportedType):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Unsupported image type"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Upload failed"))
	}
	if !decision.Allowed {
		return c.JSON(models.DecisionResponse(decision, "Photo limit reached for this memorial"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(fiber.Map{
		"photo": photo,
		"url":   h.photos.PublicURL(photo),
	}, "Photo uploaded"))
}

// GetMemorialPhotos is public; memorial pages show their photos to
// visitors.
func (h *PhotoHandler) GetMemorialPhotos(c *fiber.Ctx) error {
	memorialID := c.Params("id")

	photos, urls, err := h.photos.GetMemorialPhotos(memorialID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not load photos"))
	}

	items := make([]fiber.Map, len(photos))
	for i := range photos {
		items[i] = fiber.Map{
			"photo": photos[i],
			"url":   urls[i],
		}
	}
	return c.JSON(models.SuccessResponse(items, ""))
}

func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	photoID, err := strconv.ParseUint(c.Params("photoId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo id"))
	}

	if err := h.photos.Delete(userID, uint(photoID)); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Photo not found"))
		case errors.Is(err, service.ErrUnauthorized):
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You do not own this photo"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not delete photo"))
	}

	return c.JSON(models.SuccessResponse(nil, "Photo deleted"))
}
