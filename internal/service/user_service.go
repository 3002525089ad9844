package service

import (
	"errors"

	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/pkg/bcrypt"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	users     UserStore
	tiers     TierStore
	memorials MemorialStore
	photos    PhotoStore
	logger    *zap.Logger
}

func NewUserService(users UserStore, tiers TierStore, memorials MemorialStore, photos PhotoStore, logger *zap.Logger) *UserService {
	return &UserService{
		users:     users,
		tiers:     tiers,
		memorials: memorials,
		photos:    photos,
		logger:    logger,
	}
}

func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetDashboard bundles the user, their tier, and their current usage
// against the tier limits.
func (s *UserService) GetDashboard(userID uint) (*models.Dashboard, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	tier, err := s.tiers.GetByLevel(user.TierLevel)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	memorialCount, err := s.memorials.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	photoCount, err := s.photos.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		User:          *user,
		Tier:          *tier,
		MemorialCount: int(memorialCount),
		PhotoCount:    int(photoCount),
		MaxMemorials:  tier.MaxMemorials,
		MaxPhotos:     tier.MaxPhotos,
	}, nil
}

// ChangePassword verifies the current password before rewriting it.
func (s *UserService) ChangePassword(userID uint, req models.ChangePasswordRequest) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.ComparePassword(user.Password, req.CurrentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(userID, hashedPassword); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.Uint("user_id", userID))
	return nil
}
