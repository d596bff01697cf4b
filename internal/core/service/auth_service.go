package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mka-platform/lms-api/internal/api/metrics"
	"github.com/mka-platform/lms-api/internal/core/domain"
	"github.com/mka-platform/lms-api/internal/core/ports"
)

// AuthService implements login and the credential-recovery flows. Recovery
// secrets live in the injected TokenStore; the emails that carry them are
// best-effort, like every other notification.
type AuthService struct {
	repo      ports.UserRepository
	tokens    ports.TokenStore
	mailer    ports.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenStore, mailer ports.Mailer, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		tokens:    tokens,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login verifies the password and returns a signed JWT plus the redacted
// user. Unknown emails and bad passwords are both invalid credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	redacted := user.Redacted()
	return token, &redacted, nil
}

// ForgotPassword issues a reset token and mails it. It deliberately reports
// success for unknown addresses so the endpoint cannot be used to probe
// which emails exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := s.tokens.SaveResetToken(ctx, email, token); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, email, token); err != nil {
		metrics.MailSentTotal.WithLabelValues("password_reset", "error").Inc()
		s.logger.Error().Err(err).Str("email", email).Msg("password reset email not delivered")
	} else {
		metrics.MailSentTotal.WithLabelValues("password_reset", "ok").Inc()
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	ok, err := s.tokens.ConsumeResetToken(ctx, email, token)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrTokenInvalid
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, email, hash); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Msg("password reset completed")
	return nil
}

// SendVerificationCode issues a six-digit code valid for five minutes.
func (s *AuthService) SendVerificationCode(ctx context.Context, email string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		return err
	}

	code := generateVerificationCode()
	if err := s.tokens.SaveVerificationCode(ctx, email, code); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	if err := s.mailer.SendVerificationCode(ctx, email, code); err != nil {
		metrics.MailSentTotal.WithLabelValues("verification_code", "error").Inc()
		s.logger.Error().Err(err).Str("email", email).Msg("verification code email not delivered")
	} else {
		metrics.MailSentTotal.WithLabelValues("verification_code", "ok").Inc()
	}
	return nil
}

// VerifyCode consumes a verification code, failing with ErrTokenInvalid when
// the code is wrong or expired.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) error {
	ok, err := s.tokens.ConsumeVerificationCode(ctx, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrTokenInvalid
	}
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateVerificationCode returns a zero-padded six-digit code.
func generateVerificationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
