// Package mail implements the notification gateway over SendGrid. Delivery
// is best-effort by contract: callers log failures and move on, so every
// error returned here wraps domain.ErrMailTransport.
package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/mka-platform/lms-api/internal/core/domain"
)

// Config carries the SendGrid credentials and sender identity.
type Config struct {
	APIKey      string
	FromName    string
	FromEmail   string
	FrontendURL string
}

// SendGridMailer implements ports.Mailer using the SendGrid v3 API.
type SendGridMailer struct {
	client *sendgrid.Client
	cfg    Config
}

func NewSendGridMailer(cfg Config) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cfg.APIKey),
		cfg:    cfg,
	}
}

func (m *SendGridMailer) SendWelcome(ctx context.Context, to, tempPassword, role string) error {
	plain, html := welcomeBody(tempPassword, role)
	return m.send(ctx, to, welcomeSubject, plain, html)
}

func (m *SendGridMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	plain, html := resetBody(m.cfg.FrontendURL, to, token)
	return m.send(ctx, to, resetSubject, plain, html)
}

func (m *SendGridMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	plain, html := verificationBody(code)
	return m.send(ctx, to, verificationSubject, plain, html)
}

func (m *SendGridMailer) send(ctx context.Context, to, subject, plain, html string) error {
	from := sgmail.NewEmail(m.cfg.FromName, m.cfg.FromEmail)
	message := sgmail.NewSingleEmail(from, subject, sgmail.NewEmail("", to), plain, html)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMailTransport, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: sendgrid responded %d: %s", domain.ErrMailTransport, resp.StatusCode, resp.Body)
	}
	return nil
}
