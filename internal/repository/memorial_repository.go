package repository

import (
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"gorm.io/gorm"
)

type MemorialRepository struct {
	db *gorm.DB
}

func NewMemorialRepository(db *gorm.DB) *MemorialRepository {
	return &MemorialRepository{db: db}
}

func (r *MemorialRepository) Create(memorial *models.Memorial) error {
	return r.db.Create(memorial).Error
}

func (r *MemorialRepository) GetByID(id string) (*models.Memorial, error) {
	var memorial models.Memorial
	err := r.db.Where("id = ?", id).First(&memorial).Error
	if err != nil {
		return nil, err
	}
	return &memorial, nil
}

func (r *MemorialRepository) GetByURL(url string) (*models.Memorial, error) {
	var memorial models.Memorial
	err := r.db.Where("url = ?", url).First(&memorial).Error
	if err != nil {
		return nil, err
	}
	return &memorial, nil
}

func (r *MemorialRepository) GetUserMemorials(userID uint) ([]models.Memorial, error) {
	var memorials []models.Memorial
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&memorials).Error
	return memorials, err
}

func (r *MemorialRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Memorial{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *MemorialRepository) Update(memorial *models.Memorial) error {
	return r.db.Save(memorial).Error
}

func (r *MemorialRepository) UpdateAILetter(id string, letter string) error {
	return r.db.Model(&models.Memorial{}).Where("id = ?", id).
		Update("ai_letter", letter).Error
}

func (r *MemorialRepository) UpdatePersonality(id string, personalityType string) error {
	return r.db.Model(&models.Memorial{}).Where("id = ?", id).
		Update("personality_type", personalityType).Error
}

func (r *MemorialRepository) Delete(id string) error {
	return r.db.Delete(&models.Memorial{}, "id = ?", id).Error
}

func (r *MemorialRepository) SaveAnswers(answers []models.PersonalityAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.Create(&answers).Error
}

func (r *MemorialRepository) GetAnswers(memorialID string) ([]models.PersonalityAnswer, error) {
	var answers []models.PersonalityAnswer
	err := r.db.Where("memorial_id = ?", memorialID).Order("question_id asc").Find(&answers).Error
	return answers, err
}

func (r *MemorialRepository) SaveMessage(message *models.GuestMessage) error {
	return r.db.Create(message).Error
}

func (r *MemorialRepository) GetMessages(memorialID string) ([]models.GuestMessage, error) {
	var messages []models.GuestMessage
	err := r.db.Where("memorial_id = ?", memorialID).Order("created_at desc").Find(&messages).Error
	return messages, err
}
