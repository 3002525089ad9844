package repository

import (
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

func (r *SessionRepository) Get(token string) (*models.Session, error) {
	var session models.Session
	err := r.db.Where("token = ?", token).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete is idempotent; deleting an absent token is not an error.
func (r *SessionRepository) Delete(token string) error {
	return r.db.Delete(&models.Session{}, "token = ?", token).Error
}

func (r *SessionRepository) DeleteForUser(userID uint) error {
	return r.db.Delete(&models.Session{}, "user_id = ?", userID).Error
}
