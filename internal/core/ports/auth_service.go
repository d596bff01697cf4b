package ports

import (
	"context"

	"github.com/mka-platform/lms-api/internal/core/domain"
)

// AuthService covers login and the credential-recovery flows.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, token, newPassword string) error
	SendVerificationCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
}
