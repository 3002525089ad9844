package service

import (
	"errors"
	"time"

	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/pkg/bcrypt"
	"github.com/pawmemo/pawmemo-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	TokenExpiryReset       = 15 * time.Minute
	TokenExpiryEmailVerify = 24 * time.Hour

	verifyTokenBytes = 16
	resetTokenBytes  = 16
)

type AuthService struct {
	users    UserStore
	sessions *SessionService
	mailer   Mailer
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(users UserStore, sessions *SessionService, mailer Mailer, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		mailer:   mailer,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates a new account at the free tier and sends a verification
// email. It does not log the user in; login is a separate step.
func (s *AuthService) Register(req models.RegisterRequest) (*models.User, error) {
	exists, err := s.users.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	verificationToken, err := utils.GenerateSecureToken(verifyTokenBytes)
	if err != nil {
		return nil, err
	}
	expiry := s.now().Add(TokenExpiryEmailVerify)

	user := &models.User{
		Email:             req.Email,
		Password:          hashedPassword,
		TierLevel:         0,
		IsActive:          true,
		EmailVerified:     false,
		VerificationToken: verificationToken,
		VerificationExp:   &expiry,
	}

	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	go s.mailer.SendVerificationEmail(user.Email, verificationToken)

	s.logger.Info("user registered", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
	return user, nil
}

// Login verifies credentials against active accounts only and opens a new
// session. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(req models.LoginRequest, ip, userAgent string) (*models.AuthResponse, error) {
	user, err := s.users.GetActiveByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	loginAt := s.now()
	if err := s.users.RecordLogin(user.ID, loginAt); err != nil {
		return nil, err
	}
	user.LastLoginAt = &loginAt

	token, err := s.sessions.Create(user.ID, ip, userAgent)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		SessionToken: token,
		User:         *user,
	}, nil
}

// Logout revokes the session; revoking twice is fine.
func (s *AuthService) Logout(token string) error {
	return s.sessions.Revoke(token)
}

// VerifyEmail consumes a verification token exactly once. The token fields
// are cleared on success so a replay finds nothing to match.
func (s *AuthService) VerifyEmail(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByVerificationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if user.VerificationExp == nil || s.now().After(*user.VerificationExp) {
		return nil, ErrInvalidToken
	}

	won, err := s.users.ConsumeVerificationToken(user.ID, token)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, ErrInvalidToken
	}

	user.EmailVerified = true
	user.VerificationToken = ""
	user.VerificationExp = nil
	return user, nil
}

// ResendVerification issues a fresh token, superseding any earlier one for
// the same account.
func (s *AuthService) ResendVerification(email string) error {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}

	token, err := utils.GenerateSecureToken(verifyTokenBytes)
	if err != nil {
		return err
	}
	if err := s.users.SetVerificationToken(user.ID, token, s.now().Add(TokenExpiryEmailVerify)); err != nil {
		return err
	}

	return s.mailer.SendVerificationEmail(user.Email, token)
}

// ForgotPassword creates a single-use reset token. It reports success even
// for unknown emails so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.users.GetActiveByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := utils.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		return err
	}

	reset := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: s.now().Add(TokenExpiryReset),
	}
	if err := s.users.CreateResetToken(reset); err != nil {
		return err
	}

	return s.mailer.SendPasswordResetEmail(user.Email, token)
}

// ResetPassword consumes a reset token and rewrites the password. The
// token burn and the password change commit together; a second use of the
// same token fails even when requests race.
func (s *AuthService) ResetPassword(token string, newPassword string) error {
	reset, err := s.users.GetResetToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	if reset.Used || s.now().After(reset.ExpiresAt) {
		return ErrInvalidToken
	}

	hashedPassword, err := bcrypt.HashPassword(newPassword)
	if err != nil {
		return err
	}

	won, err := s.users.ConsumeResetToken(reset.ID, reset.UserID, hashedPassword)
	if err != nil {
		return err
	}
	if !won {
		return ErrInvalidToken
	}

	// Anyone holding an old session is logged out along with the old
	// password.
	if err := s.sessions.RevokeAll(reset.UserID); err != nil {
		s.logger.Error("failed to revoke sessions after reset", zap.Uint("user_id", reset.UserID), zap.Error(err))
	}

	s.logger.Info("password reset", zap.Uint("user_id", reset.UserID))
	return nil
}
