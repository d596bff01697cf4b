package ports

import "context"

// Mailer sends the platform's templated notification emails. Every method is
// best-effort from the caller's point of view: a returned error wraps
// domain.ErrMailTransport and must never abort the operation that triggered
// the notification.
type Mailer interface {
	SendWelcome(ctx context.Context, to, tempPassword, role string) error
	SendPasswordReset(ctx context.Context, to, token string) error
	SendVerificationCode(ctx context.Context, to, code string) error
}
