package service

import (
	"errors"
	"time"

	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// Sessions carry an absolute expiry; there is no sliding window.
	SessionTTL = 30 * 24 * time.Hour

	// 16 bytes = 128 bits of entropy per token.
	sessionTokenBytes = 16
)

// SessionService owns the login-session lifecycle: create on login,
// resolve on every authenticated request, revoke on logout. Expiry is a
// read-time check; expired rows are simply never resolved again.
type SessionService struct {
	sessions SessionStore
	users    UserStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewSessionService(sessions SessionStore, users UserStore, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions: sessions,
		users:    users,
		logger:   logger,
		now:      time.Now,
	}
}

// Create issues a new opaque session token for the user.
func (s *SessionService) Create(userID uint, ip, userAgent string) (string, error) {
	token, err := utils.GenerateSecureToken(sessionTokenBytes)
	if err != nil {
		return "", err
	}

	now := s.now()
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		IP:        ip,
		UserAgent: userAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}

	if err := s.sessions.Create(session); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user behind a valid session token, or nil. Unknown,
// expired, and disabled-account tokens all resolve to nil uniformly so the
// caller cannot distinguish them.
func (s *SessionService) Resolve(token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessions.Get(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !s.now().Before(session.ExpiresAt) {
		return nil, nil
	}

	user, err := s.users.GetByID(session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, nil
	}

	return user, nil
}

// Revoke deletes the session row. Revoking an unknown or already revoked
// token succeeds; logout is idempotent.
func (s *SessionService) Revoke(token string) error {
	if err := s.sessions.Delete(token); err != nil {
		return err
	}
	s.logger.Debug("session revoked", zap.String("token_prefix", tokenPrefix(token)))
	return nil
}

// RevokeAll drops every session the user has open, on any device.
func (s *SessionService) RevokeAll(userID uint) error {
	return s.sessions.DeleteForUser(userID)
}

func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8]
}
