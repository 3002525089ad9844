package models

import (
	"time"
)

type Memorial struct {
	ID              string     `json:"id" gorm:"primaryKey;size:36"`
	UserID          uint       `json:"user_id" gorm:"not null;index"`
	PetName         string     `json:"pet_name" gorm:"not null"`
	Species         string     `json:"species" gorm:"not null"`
	Breed           string     `json:"breed"`
	Color           string     `json:"color"`
	Gender          string     `json:"gender"`
	BirthDate       string     `json:"birth_date"`
	MemorialDate    string     `json:"memorial_date"`
	Weight          float64    `json:"weight"`
	PersonalityType string     `json:"personality_type"`
	AILetter        string     `json:"ai_letter"`
	URL             string     `json:"url" gorm:"unique;not null"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PhotoCount      int        `json:"photo_count" gorm:"-"`
	LastVisitAt     *time.Time `json:"last_visit_at"`
}

type Photos struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	MemorialID string    `json:"memorial_id" gorm:"not null;index;size:36"`
	UserID     uint      `json:"user_id" gorm:"not null"`
	FileName   string    `json:"file_name" gorm:"not null"`
	FileSize   int64     `json:"file_size" gorm:"not null"`
	MimeType   string    `json:"mime_type" gorm:"not null"`
	R2Key      string    `json:"r2_key" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// One quiz answer per question. Answers are re-scored into the pet's
// personality type whenever the full set is saved.
type PersonalityAnswer struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	MemorialID string    `json:"memorial_id" gorm:"not null;index;size:36"`
	QuestionID int       `json:"question_id" gorm:"not null"`
	Answer     string    `json:"answer" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// Guest book entry on the public memorial page.
type GuestMessage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	MemorialID  string    `json:"memorial_id" gorm:"not null;index;size:36"`
	VisitorName string    `json:"visitor_name" gorm:"not null"`
	Message     string    `json:"message" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

type QuizAnswerInput struct {
	QuestionID int    `json:"question_id" validate:"required"`
	Answer     string `json:"answer" validate:"required,oneof=A B C D"`
}

type MemorialRequest struct {
	PetName      string            `json:"pet_name" validate:"required,max=60"`
	Species      string            `json:"species" validate:"required,max=40"`
	Breed        string            `json:"breed" validate:"max=60"`
	Color        string            `json:"color" validate:"max=40"`
	Gender       string            `json:"gender" validate:"omitempty,oneof=male female unknown"`
	BirthDate    string            `json:"birth_date"`
	MemorialDate string            `json:"memorial_date" validate:"required"`
	Weight       float64           `json:"weight"`
	QuizAnswers  []QuizAnswerInput `json:"quiz_answers" validate:"omitempty,dive"`
}

type UpdateMemorialRequest struct {
	PetName      *string  `json:"pet_name"`
	Breed        *string  `json:"breed"`
	Color        *string  `json:"color"`
	Gender       *string  `json:"gender"`
	BirthDate    *string  `json:"birth_date"`
	MemorialDate *string  `json:"memorial_date"`
	Weight       *float64 `json:"weight"`
}

type GuestMessageRequest struct {
	VisitorName string `json:"visitor_name" validate:"required,max=40"`
	Message     string `json:"message" validate:"required,max=500"`
}
