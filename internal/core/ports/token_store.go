package ports

import "context"

// TokenStore keeps short-lived secrets for the password-reset and
// email-verification flows. Tokens are single-use: a successful Consume
// deletes the stored value.
type TokenStore interface {
	SaveResetToken(ctx context.Context, email, token string) error
	ConsumeResetToken(ctx context.Context, email, token string) (bool, error)
	SaveVerificationCode(ctx context.Context, email, code string) error
	ConsumeVerificationCode(ctx context.Context, email, code string) (bool, error)
}
