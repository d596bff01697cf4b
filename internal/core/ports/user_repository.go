package ports

import (
	"context"

	"github.com/mka-platform/lms-api/internal/core/domain"
)

// UserRepository defines the durable persistence contract for user records.
//
// Implementations must report failures through the domain sentinels:
// uniqueness violations as domain.ErrEmailTaken, missing records as
// domain.ErrUserNotFound, and any connectivity problem as
// domain.ErrStoreUnavailable so the service layer can decide whether a
// fallback path applies.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	UpdateByID(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	UpdateByEmail(ctx context.Context, email string, patch domain.UserPatch) (*domain.User, error)
	UpdatePassword(ctx context.Context, email, hash string) error
	Delete(ctx context.Context, id int64) error
}
