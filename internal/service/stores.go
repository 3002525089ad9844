package service

import (
	"time"

	"github.com/pawmemo/pawmemo-backend/internal/models"
)

// Store interfaces consumed by the services. The gorm repositories in
// internal/repository satisfy them; tests substitute in-memory fakes.

type UserStore interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetActiveByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	Update(user *models.User) error
	UpdatePassword(userID uint, hashedPassword string) error
	RecordLogin(userID uint, at time.Time) error
	GetByVerificationToken(token string) (*models.User, error)
	ConsumeVerificationToken(userID uint, token string) (bool, error)
	SetVerificationToken(userID uint, token string, expiresAt time.Time) error
	CreateResetToken(token *models.PasswordResetToken) error
	GetResetToken(token string) (*models.PasswordResetToken, error)
	ConsumeResetToken(tokenID uint, userID uint, hashedPassword string) (bool, error)
}

type SessionStore interface {
	Create(session *models.Session) error
	Get(token string) (*models.Session, error)
	Delete(token string) error
	DeleteForUser(userID uint) error
}

type TierStore interface {
	GetByLevel(level int) (*models.Tier, error)
	GetAll() ([]models.Tier, error)
}

type MemorialStore interface {
	Create(memorial *models.Memorial) error
	GetByID(id string) (*models.Memorial, error)
	GetByURL(url string) (*models.Memorial, error)
	GetUserMemorials(userID uint) ([]models.Memorial, error)
	CountByUser(userID uint) (int64, error)
	Update(memorial *models.Memorial) error
	UpdateAILetter(id string, letter string) error
	UpdatePersonality(id string, personalityType string) error
	Delete(id string) error
	SaveAnswers(answers []models.PersonalityAnswer) error
	GetAnswers(memorialID string) ([]models.PersonalityAnswer, error)
	SaveMessage(message *models.GuestMessage) error
	GetMessages(memorialID string) ([]models.GuestMessage, error)
}

type PhotoStore interface {
	Create(photo *models.Photos) error
	GetByID(id uint) (*models.Photos, error)
	GetByMemorialID(memorialID string) ([]models.Photos, error)
	CountByMemorialID(memorialID string) (int64, error)
	CountByUser(userID uint) (int64, error)
	Delete(id uint) error
}

type OrderStore interface {
	Create(order *models.PaymentOrder) error
	GetByOrderNo(orderNo string) (*models.PaymentOrder, error)
	GetUserOrders(userID uint) ([]models.PaymentOrder, error)
	CompletePending(orderNo string, platformRef string, paidAt time.Time) (bool, error)
	TransitionPending(orderNo string, status models.OrderStatus, platformRef string) (bool, error)
	RefundPaid(orderNo string, platformRef string) (bool, error)
	GetLedgerEntries(userID uint) ([]models.PaymentLedger, error)
}

// Mailer is the outbound email surface the services need.
type Mailer interface {
	SendVerificationEmail(email, token string) error
	SendPasswordResetEmail(email, resetToken string) error
	SendMemorialCreatedEmail(email, petName, memorialURL, aiLetter string) error
}
