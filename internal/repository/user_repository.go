package repository

import (
	"time"

	"github.com/pawmemo/pawmemo-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetActiveByEmail only matches active accounts; disabled users cannot log in.
func (r *UserRepository) GetActiveByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdatePassword(userID uint, hashedPassword string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password", hashedPassword).Error
}

func (r *UserRepository) RecordLogin(userID uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_login_at", at).Error
}

func (r *UserRepository) GetByVerificationToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.Where("verification_token = ?", token).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ConsumeVerificationToken marks the email verified and clears the token
// fields. The update is conditional on the token still being in place, so
// when two requests race on the same token only one reports success.
func (r *UserRepository) ConsumeVerificationToken(userID uint, token string) (bool, error) {
	res := r.db.Model(&models.User{}).
		Where("id = ? AND verification_token = ?", userID, token).
		Updates(map[string]interface{}{
			"email_verified":     true,
			"verification_token": "",
			"verification_exp":   nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepository) SetVerificationToken(userID uint, token string, expiresAt time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"verification_token": token,
			"verification_exp":   expiresAt,
		}).Error
}

func (r *UserRepository) CreateResetToken(token *models.PasswordResetToken) error {
	return r.db.Create(token).Error
}

func (r *UserRepository) GetResetToken(token string) (*models.PasswordResetToken, error) {
	var reset models.PasswordResetToken
	err := r.db.Where("token = ?", token).First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

// ConsumeResetToken rewrites the password and burns the token in one
// transaction. The conditional update on used=false makes a second
// consumption lose even if two requests race.
func (r *UserRepository) ConsumeResetToken(tokenID uint, userID uint, hashedPassword string) (bool, error) {
	won := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PasswordResetToken{}).
			Where("id = ? AND used = ?", tokenID, false).
			Update("used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		won = true
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("password", hashedPassword).Error
	})
	return won, err
}
