package repository

import (
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"gorm.io/gorm"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(photo *models.Photos) error {
	return r.db.Create(photo).Error
}

func (r *PhotoRepository) GetByID(id uint) (*models.Photos, error) {
	var photo models.Photos
	err := r.db.First(&photo, id).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepository) GetByMemorialID(memorialID string) ([]models.Photos, error) {
	var photos []models.Photos
	err := r.db.Where("memorial_id = ?", memorialID).Order("created_at desc").Find(&photos).Error
	return photos, err
}

func (r *PhotoRepository) CountByMemorialID(memorialID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Photos{}).Where("memorial_id = ?", memorialID).Count(&count).Error
	return count, err
}

func (r *PhotoRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Photos{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PhotoRepository) Delete(id uint) error {
	return r.db.Delete(&models.Photos{}, id).Error
}
