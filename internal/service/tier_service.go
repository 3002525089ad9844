package service

import (
	"errors"

	"github.com/pawmemo/pawmemo-backend/internal/models"
	"gorm.io/gorm"
)

// TierService exposes the tier catalog. Tiers are read-only at runtime;
// the table is seeded at startup.
type TierService struct {
	tiers TierStore
}

func NewTierService(tiers TierStore) *TierService {
	return &TierService{tiers: tiers}
}

func (s *TierService) GetAll() ([]models.Tier, error) {
	return s.tiers.GetAll()
}

func (s *TierService) GetByLevel(level int) (*models.Tier, error) {
	tier, err := s.tiers.GetByLevel(level)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tier, nil
}
