package ports

import (
	"context"
	"encoding/json"

	"github.com/mka-platform/lms-api/internal/core/domain"
)

// Persistence modes recorded on a provisioning result.
const (
	ModeDurable  = "durable"
	ModeFallback = "fallback"
)

// RegisterInput is the payload for provisioning a new account. Skills is the
// raw JSON value as received; the service coerces it (see
// domain.NormalizeSkills).
type RegisterInput struct {
	Email    string
	Role     string
	Name     string
	Phone    string
	Location string
	About    string
	Skills   json.RawMessage
}

// UpdateInput is a partial update as received from the API. Present fields
// are applied, absent fields left untouched.
type UpdateInput struct {
	Name       *string
	Phone      *string
	Location   *string
	About      *string
	Skills     json.RawMessage
	ProfilePic *string
}

// ProvisionResult reports the outcome of a registration, including whether
// the welcome email went out. NotifyErr carries the transport failure for
// logging; it never caused the registration to fail.
type ProvisionResult struct {
	User      domain.User `json:"user"`
	Mode      string      `json:"mode"`
	Notified  bool        `json:"notified"`
	NotifyErr error       `json:"-"`
}

// UserService provisions and manages user accounts, absorbing durable-store
// outages for the operations that have a fallback path (create, list,
// delete).
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*ProvisionResult, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateByID(ctx context.Context, id int64, input UpdateInput) (*domain.User, error)
	UpdateByEmail(ctx context.Context, email string, input UpdateInput) (*domain.User, error)
	Remove(ctx context.Context, id int64) error
}
