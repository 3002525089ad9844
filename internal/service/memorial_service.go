package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/pkg/ai"
	"github.com/pawmemo/pawmemo-backend/pkg/qrcode"
	"github.com/pawmemo/pawmemo-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const memorialSlugLength = 10

type MemorialService struct {
	memorials    MemorialStore
	photos       PhotoStore
	users        UserStore
	entitlements *EntitlementService
	personality  *PersonalityService
	letters      ai.LetterGenerator
	qr           *qrcode.QRService
	mailer       Mailer
	memorialURL  string
	logger       *zap.Logger
	now          func() time.Time
}

func NewMemorialService(
	memorials MemorialStore,
	photos PhotoStore,
	users UserStore,
	entitlements *EntitlementService,
	personality *PersonalityService,
	letters ai.LetterGenerator,
	qr *qrcode.QRService,
	mailer Mailer,
	memorialURL string,
	logger *zap.Logger,
) *MemorialService {
	return &MemorialService{
		memorials:    memorials,
		photos:       photos,
		users:        users,
		entitlements: entitlements,
		personality:  personality,
		letters:      letters,
		qr:           qr,
		mailer:       mailer,
		memorialURL:  memorialURL,
		logger:       logger,
		now:          time.Now,
	}
}

// Create builds a new memorial if the user's tier allows another one. A
// denial is a normal outcome, returned in the decision with a nil memorial.
func (s *MemorialService) Create(userID uint, req models.MemorialRequest) (*models.Memorial, models.Decision, error) {
	decision, err := s.entitlements.CanCreateMemorial(userID)
	if err != nil {
		return nil, models.Decision{}, err
	}
	if !decision.Allowed {
		return nil, decision, nil
	}

	memorial := &models.Memorial{
		ID:           uuid.New().String(),
		UserID:       userID,
		PetName:      req.PetName,
		Species:      req.Species,
		Breed:        req.Breed,
		Color:        req.Color,
		Gender:       req.Gender,
		BirthDate:    req.BirthDate,
		MemorialDate: req.MemorialDate,
		Weight:       req.Weight,
		URL:          utils.GenerateRandomString(memorialSlugLength),
	}

	if len(req.QuizAnswers) > 0 {
		memorial.PersonalityType = s.personality.Score(req.QuizAnswers)
	}

	if err := s.memorials.Create(memorial); err != nil {
		return nil, models.Decision{}, err
	}

	if len(req.QuizAnswers) > 0 {
		answers := make([]models.PersonalityAnswer, 0, len(req.QuizAnswers))
		for _, a := range req.QuizAnswers {
			answers = append(answers, models.PersonalityAnswer{
				MemorialID: memorial.ID,
				QuestionID: a.QuestionID,
				Answer:     a.Answer,
			})
		}
		if err := s.memorials.SaveAnswers(answers); err != nil {
			s.logger.Error("failed to save quiz answers",
				zap.String("memorial_id", memorial.ID),
				zap.Error(err))
		}
	}

	if user, err := s.users.GetByID(userID); err == nil {
		go s.mailer.SendMemorialCreatedEmail(user.Email, memorial.PetName, s.memorialURL+memorial.URL, memorial.AILetter)
	}

	s.logger.Info("memorial created",
		zap.String("memorial_id", memorial.ID),
		zap.Uint("user_id", userID),
		zap.String("pet_name", memorial.PetName))

	return memorial, decision, nil
}

// GetUserMemorials lists the owner's memorials with photo counts attached.
func (s *MemorialService) GetUserMemorials(userID uint) ([]models.Memorial, error) {
	memorials, err := s.memorials.GetUserMemorials(userID)
	if err != nil {
		return nil, err
	}
	for i := range memorials {
		count, err := s.photos.CountByMemorialID(memorials[i].ID)
		if err != nil {
			return nil, err
		}
		memorials[i].PhotoCount = int(count)
	}
	return memorials, nil
}

// GetOwned returns a memorial only to its owner.
func (s *MemorialService) GetOwned(userID uint, memorialID string) (*models.Memorial, error) {
	memorial, err := s.memorials.GetByID(memorialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if memorial.UserID != userID {
		return nil, ErrUnauthorized
	}

	count, err := s.photos.CountByMemorialID(memorial.ID)
	if err != nil {
		return nil, err
	}
	memorial.PhotoCount = int(count)
	return memorial, nil
}

// GetPublic resolves a memorial by its public URL slug. No login needed.
func (s *MemorialService) GetPublic(slug string) (*models.Memorial, error) {
	memorial, err := s.memorials.GetByURL(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	count, err := s.photos.CountByMemorialID(memorial.ID)
	if err != nil {
		return nil, err
	}
	memorial.PhotoCount = int(count)

	visit := s.now()
	memorial.LastVisitAt = &visit
	if err := s.memorials.Update(memorial); err != nil {
		s.logger.Warn("failed to record memorial visit", zap.String("memorial_id", memorial.ID))
	}

	return memorial, nil
}

// Update applies partial edits to an owned memorial. Nil fields stay as
// they are.
func (s *MemorialService) Update(userID uint, memorialID string, req models.UpdateMemorialRequest) (*models.Memorial, error) {
	memorial, err := s.GetOwned(userID, memorialID)
	if err != nil {
		return nil, err
	}

	if req.PetName != nil {
		memorial.PetName = *req.PetName
	}
	if req.Breed != nil {
		memorial.Breed = *req.Breed
	}
	if req.Color != nil {
		memorial.Color = *req.Color
	}
	if req.Gender != nil {
		memorial.Gender = *req.Gender
	}
	if req.BirthDate != nil {
		memorial.BirthDate = *req.BirthDate
	}
	if req.MemorialDate != nil {
		memorial.MemorialDate = *req.MemorialDate
	}
	if req.Weight != nil {
		memorial.Weight = *req.Weight
	}

	if err := s.memorials.Update(memorial); err != nil {
		return nil, err
	}
	return memorial, nil
}

// Delete removes an owned memorial. Photos are deleted with it so the
// owner's counts free up immediately.
func (s *MemorialService) Delete(userID uint, memorialID string) error {
	if _, err := s.GetOwned(userID, memorialID); err != nil {
		return err
	}
	return s.memorials.Delete(memorialID)
}

// SubmitQuiz saves a fresh answer set and re-scores the personality type.
func (s *MemorialService) SubmitQuiz(userID uint, memorialID string, answers []models.QuizAnswerInput) (string, error) {
	memorial, err := s.GetOwned(userID, memorialID)
	if err != nil {
		return "", err
	}

	rows := make([]models.PersonalityAnswer, 0, len(answers))
	for _, a := range answers {
		rows = append(rows, models.PersonalityAnswer{
			MemorialID: memorial.ID,
			QuestionID: a.QuestionID,
			Answer:     a.Answer,
		})
	}
	if err := s.memorials.SaveAnswers(rows); err != nil {
		return "", err
	}

	personalityType := s.personality.Score(answers)
	if err := s.memorials.UpdatePersonality(memorial.ID, personalityType); err != nil {
		return "", err
	}
	return personalityType, nil
}

// GenerateLetter asks the AI backend for a condolence letter and stores it
// on the memorial. Tier-gated; denials come back in the decision.
func (s *MemorialService) GenerateLetter(userID uint, memorialID string) (string, models.Decision, error) {
	decision, err := s.entitlements.CanUseAI(userID)
	if err != nil {
		return "", models.Decision{}, err
	}
	if !decision.Allowed {
		return "", decision, nil
	}

	memorial, err := s.GetOwned(userID, memorialID)
	if err != nil {
		return "", models.Decision{}, err
	}

	letter, err := s.letters.GenerateLetter(memorial.PetName, memorial.Species, memorial.PersonalityType)
	if err != nil {
		return "", models.Decision{}, err
	}

	if err := s.memorials.UpdateAILetter(memorial.ID, letter); err != nil {
		return "", models.Decision{}, err
	}

	s.logger.Info("letter generated", zap.String("memorial_id", memorial.ID))
	return letter, decision, nil
}

// QRCode renders a PNG pointing at the memorial's public page.
func (s *MemorialService) QRCode(userID uint, memorialID string, size int) ([]byte, error) {
	memorial, err := s.GetOwned(userID, memorialID)
	if err != nil {
		return nil, err
	}
	return s.qr.GenerateQRCode(memorial.URL, size)
}

// LeaveMessage adds a guest-book entry on the public page. Visitors do not
// need an account.
func (s *MemorialService) LeaveMessage(slug string, req models.GuestMessageRequest) (*models.GuestMessage, error) {
	memorial, err := s.memorials.GetByURL(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	message := &models.GuestMessage{
		MemorialID:  memorial.ID,
		VisitorName: req.VisitorName,
		Message:     req.Message,
	}
	if err := s.memorials.SaveMessage(message); err != nil {
		return nil, err
	}
	return message, nil
}

// GetMessages lists the guest book for a public memorial page.
func (s *MemorialService) GetMessages(slug string) ([]models.GuestMessage, error) {
	memorial, err := s.memorials.GetByURL(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.memorials.GetMessages(memorial.ID)
}
