package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mka-platform/lms-api/internal/core/domain"
	"github.com/mka-platform/lms-api/internal/core/ports"
)

type stubUserService struct {
	registerFn      func(ctx context.Context, input ports.RegisterInput) (*ports.ProvisionResult, error)
	removeFn        func(ctx context.Context, id int64) error
	findAllFn       func(ctx context.Context) ([]domain.User, error)
	updateByEmailFn func(ctx context.Context, email string, input ports.UpdateInput) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, input ports.RegisterInput) (*ports.ProvisionResult, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserService) FindAll(ctx context.Context) ([]domain.User, error) {
	return s.findAllFn(ctx)
}

func (s *stubUserService) FindByID(context.Context, int64) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) UpdateByID(context.Context, int64, ports.UpdateInput) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) UpdateByEmail(ctx context.Context, email string, input ports.UpdateInput) (*domain.User, error) {
	if s.updateByEmailFn != nil {
		return s.updateByEmailFn(ctx, email, input)
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Remove(ctx context.Context, id int64) error {
	return s.removeFn(ctx, id)
}

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ForgotPassword(context.Context, string) error { return nil }
func (s *stubAuthService) ResetPassword(context.Context, string, string, string) error {
	return nil
}
func (s *stubAuthService) SendVerificationCode(context.Context, string) error { return nil }
func (s *stubAuthService) VerifyCode(context.Context, string, string) error { return nil }

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec, e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	users := &stubUserService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*ports.ProvisionResult, error) {
			if input.Email != "a@x.com" || input.Role != domain.RoleTrainer {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.ProvisionResult{
				User:     domain.User{ID: 7, Email: input.Email, Role: input.Role, Skills: []string{}},
				Mode:     ports.ModeDurable,
				Notified: true,
			}, nil
		},
	}
	h := NewAuthHandler(users, &stubAuthService{})

	c, rec, _ := newTestContext(t, http.MethodPost, "/auth/register", `{"email":"a@x.com","role":"Trainer"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["mode"] != ports.ModeDurable || resp["notified"] != true {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["role"] != domain.RoleTrainer {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password field must never appear in responses")
	}
}

func TestAuthHandler_Register_MissingEmail(t *testing.T) {
	h := NewAuthHandler(&stubUserService{}, &stubAuthService{})

	c, rec, e := newTestContext(t, http.MethodPost, "/auth/register", `{"role":"Trainer"}`)
	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	users := &stubUserService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.ProvisionResult, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(users, &stubAuthService{})

	c, _, _ := newTestContext(t, http.MethodPost, "/auth/register", `{"email":"dup@x.com"}`)
	err := h.Register(c)
	if err != domain.ErrEmailTaken {
		t.Fatalf("expected the conflict to propagate to the error handler, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "carol@x.com" || password != "pass1234" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "jwt-token", &domain.User{ID: 1, Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(&stubUserService{}, auth)

	c, rec, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"email":"carol@x.com","password":"pass1234"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "jwt-token" {
		t.Fatalf("token missing from response: %+v", resp)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(&stubUserService{}, auth)

	c, _, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"email":"x@x.com","password":"wrong123"}`)
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}
