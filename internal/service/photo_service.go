package service

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/pkg/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const MaxPhotoSize = 10 << 20 // 10 MB

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var (
	ErrPhotoTooLarge   = errors.New("photo exceeds the 10MB size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
)

type PhotoService struct {
	photos       PhotoStore
	memorials    MemorialStore
	entitlements *EntitlementService
	storage      storage.StorageService
	logger       *zap.Logger
}

func NewPhotoService(photos PhotoStore, memorials MemorialStore, entitlements *EntitlementService, store storage.StorageService, logger *zap.Logger) *PhotoService {
	return &PhotoService{
		photos:       photos,
		memorials:    memorials,
		entitlements: entitlements,
		storage:      store,
		logger:       logger,
	}
}

// Upload stores a photo on a memorial the user owns, if their tier still
// has room. Denials come back in the decision with a nil photo.
func (s *PhotoService) Upload(userID uint, memorialID, fileName, mimeType string, size int64, reader io.Reader) (*models.Photos, models.Decision, error) {
	if size > MaxPhotoSize {
		return nil, models.Decision{}, ErrPhotoTooLarge
	}
	if !allowedPhotoTypes[mimeType] {
		return nil, models.Decision{}, ErrUnsupportedType
	}

	decision, err := s.entitlements.CanUploadPhoto(userID, memorialID)
	if err != nil {
		return nil, models.Decision{}, err
	}
	if !decision.Allowed {
		return nil, decision, nil
	}

	key := fmt.Sprintf("memorials/%s/%s%s", memorialID, uuid.New().String(), filepath.Ext(fileName))
	if err := s.storage.Upload(key, reader); err != nil {
		return nil, models.Decision{}, fmt.Errorf("upload to storage: %w", err)
	}

	photo := &models.Photos{
		MemorialID: memorialID,
		UserID:     userID,
		FileName:   fileName,
		FileSize:   size,
		MimeType:   mimeType,
		R2Key:      key,
	}
	if err := s.photos.Create(photo); err != nil {
		// The object is orphaned in storage; remove it so counts and
		// storage stay in step.
		if delErr := s.storage.Delete(key); delErr != nil {
			s.logger.Error("failed to clean up orphaned upload", zap.String("key", key), zap.Error(delErr))
		}
		return nil, models.Decision{}, err
	}

	s.logger.Info("photo uploaded",
		zap.String("memorial_id", memorialID),
		zap.Uint("photo_id", photo.ID),
		zap.Int64("size", size))

	return photo, decision, nil
}

// GetMemorialPhotos lists the photos on a memorial with public URLs.
func (s *PhotoService) GetMemorialPhotos(memorialID string) ([]models.Photos, []string, error) {
	photos, err := s.photos.GetByMemorialID(memorialID)
	if err != nil {
		return nil, nil, err
	}
	urls := make([]string, len(photos))
	for i, p := range photos {
		urls[i] = s.storage.PublicURL(p.R2Key)
	}
	return photos, urls, nil
}

// PublicURL exposes the storage URL for a single photo.
func (s *PhotoService) PublicURL(photo *models.Photos) string {
	return s.storage.PublicURL(photo.R2Key)
}

// Delete removes an owned photo from storage and the database, freeing a
// slot against the tier limit.
func (s *PhotoService) Delete(userID uint, photoID uint) error {
	photo, err := s.photos.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if photo.UserID != userID {
		return ErrUnauthorized
	}

	if err := s.storage.Delete(photo.R2Key); err != nil {
		s.logger.Error("failed to delete photo object", zap.String("key", photo.R2Key), zap.Error(err))
	}
	return s.photos.Delete(photoID)
}
