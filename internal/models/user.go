package models

import (
	"time"
)

type User struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	Email             string     `json:"email" gorm:"unique;not null"`
	Password          string     `json:"-" gorm:"not null"`
	TierLevel         int        `json:"tier_level" gorm:"not null;default:0"`
	IsActive          bool       `json:"is_active" gorm:"not null;default:true"`
	EmailVerified     bool       `json:"email_verified" gorm:"not null;default:false"`
	VerificationToken string     `json:"-"`
	VerificationExp   *time.Time `json:"-"`
	LastLoginAt       *time.Time `json:"last_login_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Single-use password reset token. Spent either by consumption or by
// expiry; both are checked at read time, there is no sweeper.
type PasswordResetToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Token     string    `json:"-" gorm:"unique;not null"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}
