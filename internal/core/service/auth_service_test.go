package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/mka-platform/lms-api/internal/core/domain"
)

// stubTokenStore keeps tokens in maps with single-use consume semantics.
type stubTokenStore struct {
	reset  map[string]string
	verify map[string]string
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{reset: make(map[string]string), verify: make(map[string]string)}
}

func (s *stubTokenStore) SaveResetToken(_ context.Context, email, token string) error {
	s.reset[email] = token
	return nil
}

func (s *stubTokenStore) ConsumeResetToken(_ context.Context, email, token string) (bool, error) {
	if s.reset[email] != token || token == "" {
		return false, nil
	}
	delete(s.reset, email)
	return true, nil
}

func (s *stubTokenStore) SaveVerificationCode(_ context.Context, email, code string) error {
	s.verify[email] = code
	return nil
}

func (s *stubTokenStore) ConsumeVerificationCode(_ context.Context, email, code string) (bool, error) {
	if s.verify[email] != code || code == "" {
		return false, nil
	}
	delete(s.verify, email)
	return true, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *stubUserRepo, *stubTokenStore, *stubMailer) {
	t.Helper()
	repo := newStubUserRepo()
	tokens := newStubTokenStore()
	mailer := &stubMailer{}
	svc := NewAuthService(repo, tokens, mailer, "secret", time.Hour, zerolog.Nop())
	return svc, repo, tokens, mailer
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password, role string) *domain.User {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestLogin_Success(t *testing.T) {
	svc, repo, _, _ := newTestAuthService(t)
	seedUser(t, repo, "carol@x.com", "s3cret!pass", domain.RoleAdmin)

	token, user, err := svc.Login(context.Background(), "carol@x.com", "s3cret!pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if user.PasswordHash != "" {
		t.Fatalf("password hash leaked on login response")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims["role"])
	}
	if claims["email"] != "carol@x.com" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo, _, _ := newTestAuthService(t)
	seedUser(t, repo, "dave@x.com", "goodpass1", domain.RoleStudent)

	if _, _, err := svc.Login(context.Background(), "dave@x.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	// unknown accounts answer exactly like a bad password
	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestForgotPassword_StoresTokenAndMails(t *testing.T) {
	svc, repo, tokens, _ := newTestAuthService(t)
	seedUser(t, repo, "forgot@x.com", "oldpass12", domain.RoleStudent)

	if err := svc.ForgotPassword(context.Background(), "forgot@x.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if tokens.reset["forgot@x.com"] == "" {
		t.Fatalf("reset token not stored")
	}
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	svc, _, tokens, _ := newTestAuthService(t)

	if err := svc.ForgotPassword(context.Background(), "ghost@x.com"); err != nil {
		t.Fatalf("ForgotPassword must not reveal unknown accounts, got %v", err)
	}
	if len(tokens.reset) != 0 {
		t.Fatalf("no token should be stored for unknown accounts")
	}
}

func TestForgotPassword_MailFailureIsSwallowed(t *testing.T) {
	svc, repo, _, mailer := newTestAuthService(t)
	seedUser(t, repo, "forgot@x.com", "oldpass12", domain.RoleStudent)
	mailer.fail = true

	if err := svc.ForgotPassword(context.Background(), "forgot@x.com"); err != nil {
		t.Fatalf("mail failure must not propagate, got %v", err)
	}
}

func TestResetPassword_RoundTrip(t *testing.T) {
	svc, repo, tokens, _ := newTestAuthService(t)
	seedUser(t, repo, "reset@x.com", "oldpass12", domain.RoleStudent)

	if err := svc.ForgotPassword(context.Background(), "reset@x.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	token := tokens.reset["reset@x.com"]

	if err := svc.ResetPassword(context.Background(), "reset@x.com", token, "newpass34"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "reset@x.com", "newpass34"); err != nil {
		t.Fatalf("login with the new password: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "reset@x.com", "oldpass12"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}

	// the token is single-use
	if err := svc.ResetPassword(context.Background(), "reset@x.com", token, "again5678"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid on replay, got %v", err)
	}
}

func TestResetPassword_BadToken(t *testing.T) {
	svc, repo, _, _ := newTestAuthService(t)
	seedUser(t, repo, "reset@x.com", "oldpass12", domain.RoleStudent)

	if err := svc.ResetPassword(context.Background(), "reset@x.com", "bogus", "newpass34"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerificationCode_RoundTrip(t *testing.T) {
	svc, repo, tokens, _ := newTestAuthService(t)
	seedUser(t, repo, "verify@x.com", "somepass1", domain.RoleStudent)

	if err := svc.SendVerificationCode(context.Background(), "verify@x.com"); err != nil {
		t.Fatalf("SendVerificationCode: %v", err)
	}
	code := tokens.verify["verify@x.com"]
	if len(code) != 6 {
		t.Fatalf("expected a six-digit code, got %q", code)
	}

	if err := svc.VerifyCode(context.Background(), "verify@x.com", code); err != nil {
		t.Fatalf("VerifyCode: %v", err)
	}
	if err := svc.VerifyCode(context.Background(), "verify@x.com", code); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("codes are single-use, got %v", err)
	}
}

func TestVerificationCode_UnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	if err := svc.SendVerificationCode(context.Background(), "ghost@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
