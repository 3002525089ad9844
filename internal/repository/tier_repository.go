package repository

import (
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"gorm.io/gorm"
)

type TierRepository struct {
	db *gorm.DB
}

func NewTierRepository(db *gorm.DB) *TierRepository {
	return &TierRepository{db: db}
}

func (r *TierRepository) GetByLevel(level int) (*models.Tier, error) {
	var tier models.Tier
	err := r.db.Where("level = ?", level).First(&tier).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *TierRepository) GetAll() ([]models.Tier, error) {
	var tiers []models.Tier
	err := r.db.Order("level asc").Find(&tiers).Error
	return tiers, err
}

// Seed inserts the default catalog on first startup. The row-count check
// makes reseeding on every boot a no-op.
func (r *TierRepository) Seed() error {
	var count int64
	if err := r.db.Model(&models.Tier{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	tiers := models.DefaultTiers()
	return r.db.Create(&tiers).Error
}
