package models

import (
	"time"
)

// UnlimitedSentinel is how the tier table encodes "no limit" in its numeric
// columns. It must never be compared with >= directly; convert to a Limit
// first (see LimitFromMax).
const UnlimitedSentinel = -1

type Tier struct {
	Level           int       `json:"level" gorm:"primaryKey;autoIncrement:false"`
	Name            string    `json:"name" gorm:"not null"`
	MaxMemorials    int       `json:"max_memorials" gorm:"not null"`
	MaxPhotos       int       `json:"max_photos" gorm:"not null"`
	CanUseAI        bool      `json:"can_use_ai" gorm:"not null;default:false"`
	CanExport       bool      `json:"can_export" gorm:"not null;default:false"`
	CanCustomDomain bool      `json:"can_custom_domain" gorm:"not null;default:false"`
	MonthlyPrice    float64   `json:"monthly_price"`
	YearlyPrice     float64   `json:"yearly_price"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

// DefaultTiers is the reference catalog seeded at first startup. Levels
// form a strict upgrade path: a higher level never has a worse entitlement
// than a lower one.
func DefaultTiers() []Tier {
	return []Tier{
		{
			Level:        0,
			Name:         "Free",
			MaxMemorials: 1,
			MaxPhotos:    6,
			Description:  "1 memorial, 6 photos",
		},
		{
			Level:        1,
			Name:         "Premium",
			MaxMemorials: UnlimitedSentinel,
			MaxPhotos:    UnlimitedSentinel,
			CanUseAI:     true,
			CanExport:    true,
			MonthlyPrice: 29.90,
			YearlyPrice:  299.00,
			Description:  "Unlimited memorials and photos, AI letters, data export",
		},
		{
			Level:           2,
			Name:            "Forever",
			MaxMemorials:    UnlimitedSentinel,
			MaxPhotos:       UnlimitedSentinel,
			CanUseAI:        true,
			CanExport:       true,
			CanCustomDomain: true,
			MonthlyPrice:    29.90,
			YearlyPrice:     299.00,
			Description:     "Everything in Premium plus custom domains and themes",
		},
	}
}
