package service

import (
	"errors"

	"github.com/pawmemo/pawmemo-backend/internal/models"
	"gorm.io/gorm"
)

// EntitlementService is the single place that decides whether a user may
// perform a tier-gated action. It only decides; callers perform the action
// afterwards. Running the same check twice with no intervening action
// returns the same decision.
//
// Rules are evaluated in a fixed order, first failure wins:
//  1. user exists and is active
//  2. email verified, for actions that require it
//  3. tier resolves in the catalog
//  4. count limit (memorials/photos), with -1 meaning unlimited
//  5. boolean feature flag (AI/export/custom domain)
type EntitlementService struct {
	users     UserStore
	tiers     TierStore
	memorials MemorialStore
	photos    PhotoStore
}

func NewEntitlementService(users UserStore, tiers TierStore, memorials MemorialStore, photos PhotoStore) *EntitlementService {
	return &EntitlementService{
		users:     users,
		tiers:     tiers,
		memorials: memorials,
		photos:    photos,
	}
}

// resolve loads the user and their tier, applying rules 1-3. The returned
// decision is only meaningful when ok is false.
func (s *EntitlementService) resolve(userID uint, needVerified bool) (*models.User, *models.Tier, models.Decision, bool, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.Deny(models.ReasonNotLoggedIn), false, nil
		}
		return nil, nil, models.Decision{}, false, err
	}
	if !user.IsActive {
		return nil, nil, models.Deny(models.ReasonNotLoggedIn), false, nil
	}

	if needVerified && !user.EmailVerified {
		return nil, nil, models.Deny(models.ReasonEmailNotVerified), false, nil
	}

	tier, err := s.tiers.GetByLevel(user.TierLevel)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.Deny(models.ReasonTierConfigError), false, nil
		}
		return nil, nil, models.Decision{}, false, err
	}

	return user, tier, models.Decision{}, true, nil
}

// CanCreateMemorial gates memorial creation on the tier's memorial count
// limit. Email verification is not required for this action.
func (s *EntitlementService) CanCreateMemorial(userID uint) (models.Decision, error) {
	user, tier, denied, ok, err := s.resolve(userID, false)
	if err != nil {
		return models.Decision{}, err
	}
	if !ok {
		return denied, nil
	}

	limit := models.LimitFromMax(tier.MaxMemorials)
	if limit.Unlimited {
		return models.Allow(), nil
	}

	count, err := s.memorials.CountByUser(user.ID)
	if err != nil {
		return models.Decision{}, err
	}
	if !limit.Allows(int(count)) {
		return models.DenyWithCounts(models.ReasonLimitReached, int(count), limit.Max), nil
	}
	return models.Allow(), nil
}

// CanUploadPhoto gates uploads on ownership of the target memorial and the
// tier's per-memorial photo limit. Requires a verified email.
func (s *EntitlementService) CanUploadPhoto(userID uint, memorialID string) (models.Decision, error) {
	user, tier, denied, ok, err := s.resolve(userID, true)
	if err != nil {
		return models.Decision{}, err
	}
	if !ok {
		return denied, nil
	}

	// Ownership is checked before any counting happens.
	memorial, err := s.memorials.GetByID(memorialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Deny(models.ReasonNotOwner), nil
		}
		return models.Decision{}, err
	}
	if memorial.UserID != user.ID {
		return models.Deny(models.ReasonNotOwner), nil
	}

	limit := models.LimitFromMax(tier.MaxPhotos)
	if limit.Unlimited {
		return models.Allow(), nil
	}

	count, err := s.photos.CountByMemorialID(memorialID)
	if err != nil {
		return models.Decision{}, err
	}
	if !limit.Allows(int(count)) {
		return models.DenyWithCounts(models.ReasonLimitReached, int(count), limit.Max), nil
	}
	return models.Allow(), nil
}

// CanUseAI gates the condolence-letter generation. Requires a verified email.
func (s *EntitlementService) CanUseAI(userID uint) (models.Decision, error) {
	return s.flagGated(userID, true, func(t *models.Tier) bool { return t.CanUseAI })
}

// CanExport gates memorial data export. Requires a verified email.
func (s *EntitlementService) CanExport(userID uint) (models.Decision, error) {
	return s.flagGated(userID, true, func(t *models.Tier) bool { return t.CanExport })
}

// CanUseCustomDomain gates custom-domain binding.
func (s *EntitlementService) CanUseCustomDomain(userID uint) (models.Decision, error) {
	return s.flagGated(userID, false, func(t *models.Tier) bool { return t.CanCustomDomain })
}

func (s *EntitlementService) flagGated(userID uint, needVerified bool, flag func(*models.Tier) bool) (models.Decision, error) {
	_, tier, denied, ok, err := s.resolve(userID, needVerified)
	if err != nil {
		return models.Decision{}, err
	}
	if !ok {
		return denied, nil
	}

	if !flag(tier) {
		return models.Deny(models.ReasonUpgradeRequired), nil
	}
	return models.Allow(), nil
}
