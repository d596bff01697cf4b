package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mka-platform/lms-api/internal/api/metrics"
	"github.com/mka-platform/lms-api/internal/core/domain"
	"github.com/mka-platform/lms-api/internal/core/ports"
)

// UserService provisions accounts against the durable store, falling back to
// the injected in-memory cache when the store is unreachable. Only create,
// list and delete have a fallback path; single-record reads and updates
// surface the outage to the caller.
type UserService struct {
	repo     ports.UserRepository
	fallback ports.FallbackStore
	mailer   ports.Mailer
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, fallback ports.FallbackStore, mailer ports.Mailer, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, fallback: fallback, mailer: mailer, logger: logger}
}

// Register provisions a new account: generate a temporary password, hash it,
// persist the record (durably or in the fallback cache), then attempt the
// welcome email. Mail failure never fails the registration; it is reported
// on the result and logged.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*ports.ProvisionResult, error) {
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	role := input.Role
	if role == "" {
		role = domain.RoleStudent
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, input.Role)
	}

	tempPassword := GeneratePassword(DefaultPasswordLength)
	hash, err := HashPassword(tempPassword)
	if err != nil {
		// fatal: no record is created when hashing fails
		return nil, fmt.Errorf("hash temporary password: %w", err)
	}

	user := domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		Name:         input.Name,
		Phone:        input.Phone,
		Location:     input.Location,
		About:        input.About,
		Skills:       domain.NormalizeSkills(input.Skills),
	}

	mode := ports.ModeDurable
	created, err := s.repo.Create(ctx, &user)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrStoreUnavailable):
		metrics.StoreUnavailableTotal.Inc()
		mode = ports.ModeFallback
		cached := user
		if cached.Name == "" {
			cached.Name = emailLocalPart(cached.Email)
		}
		entry := s.fallback.Create(cached)
		created = &entry
		metrics.FallbackOperationsTotal.WithLabelValues("create").Inc()
		s.logger.Warn().
			Str("email", input.Email).
			Int64("user_id", entry.ID).
			Msg("durable store unavailable, user cached in fallback store")
	case errors.Is(err, domain.ErrEmailTaken):
		// no fallback for conflicts: the email genuinely exists
		return nil, err
	default:
		return nil, err
	}

	result := &ports.ProvisionResult{
		User:     created.Redacted(),
		Mode:     mode,
		Notified: true,
	}

	if mailErr := s.mailer.SendWelcome(ctx, created.Email, tempPassword, created.Role); mailErr != nil {
		result.Notified = false
		result.NotifyErr = mailErr
		metrics.MailSentTotal.WithLabelValues("welcome", "error").Inc()
		s.logger.Error().Err(mailErr).
			Str("email", created.Email).
			Msg("welcome email not delivered")
	} else {
		metrics.MailSentTotal.WithLabelValues("welcome", "ok").Inc()
	}

	metrics.UsersProvisionedTotal.WithLabelValues(mode).Inc()
	s.logger.Info().
		Int64("user_id", created.ID).
		Str("email", created.Email).
		Str("role", created.Role).
		Str("mode", mode).
		Msg("user provisioned")

	return result, nil
}

// FindAll lists every user. During an outage it returns the fallback cache
// contents instead: stale, but a response.
func (s *UserService) FindAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			metrics.StoreUnavailableTotal.Inc()
			metrics.FallbackOperationsTotal.WithLabelValues("list").Inc()
			s.logger.Warn().Msg("durable store unavailable, listing from fallback store")
			return redactAll(s.fallback.List()), nil
		}
		return nil, err
	}
	return redactAll(users), nil
}

// FindByID looks up a single user in the durable store. The fallback cache
// is intentionally not consulted here.
func (s *UserService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	redacted := user.Redacted()
	return &redacted, nil
}

// FindByEmail looks up a single user by email in the durable store.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	redacted := user.Redacted()
	return &redacted, nil
}

// UpdateByID applies a partial update keyed by id.
func (s *UserService) UpdateByID(ctx context.Context, id int64, input ports.UpdateInput) (*domain.User, error) {
	updated, err := s.repo.UpdateByID(ctx, id, toPatch(input))
	if err != nil {
		return nil, err
	}
	redacted := updated.Redacted()
	return &redacted, nil
}

// UpdateByEmail applies a partial update keyed by email. This is the path
// behind the profile page, including the uploaded profile picture.
func (s *UserService) UpdateByEmail(ctx context.Context, email string, input ports.UpdateInput) (*domain.User, error) {
	updated, err := s.repo.UpdateByEmail(ctx, email, toPatch(input))
	if err != nil {
		return nil, err
	}
	redacted := updated.Redacted()
	return &redacted, nil
}

// Remove deletes a user by id. During an outage the fallback cache is
// searched instead; a miss in both stores is NotFound.
func (s *UserService) Remove(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrStoreUnavailable) {
		metrics.StoreUnavailableTotal.Inc()
		if s.fallback.Remove(id) {
			metrics.FallbackOperationsTotal.WithLabelValues("delete").Inc()
			s.logger.Warn().Int64("user_id", id).Msg("durable store unavailable, user removed from fallback store")
			return nil
		}
		return fmt.Errorf("%w: user with id %d", domain.ErrUserNotFound, id)
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("%w: user with id %d", domain.ErrUserNotFound, id)
	}
	return err
}

// toPatch coerces the raw API input into a typed patch, running skills
// normalization on the way through.
func toPatch(input ports.UpdateInput) domain.UserPatch {
	patch := domain.UserPatch{
		Name:       input.Name,
		Phone:      input.Phone,
		Location:   input.Location,
		About:      input.About,
		ProfilePic: input.ProfilePic,
	}
	if len(input.Skills) > 0 {
		patch.Skills = domain.NormalizeSkills(input.Skills)
	}
	return patch
}

// emailLocalPart derives a display name from the address when none was
// provided during a fallback create.
func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func redactAll(users []domain.User) []domain.User {
	out := make([]domain.User, len(users))
	for i, u := range users {
		out[i] = u.Redacted()
	}
	return out
}
