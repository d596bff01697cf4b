package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Reset tokens stay valid long enough to read an email and click
	// through; verification codes are promised as five-minute in the mail
	// template.
	resetTokenTTL   = time.Hour
	verificationTTL = 5 * time.Minute
	resetKeyPrefix  = "pwreset"
	verifyKeyPrefix = "verify"
)

// TokenStore keeps password-reset tokens and email verification codes in
// Redis with their respective TTLs. Consumption is single-use: a matching
// value is deleted before the check result is returned.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) SaveResetToken(ctx context.Context, email, token string) error {
	return s.save(ctx, resetKey(email), token, resetTokenTTL)
}

func (s *TokenStore) ConsumeResetToken(ctx context.Context, email, token string) (bool, error) {
	return s.consume(ctx, resetKey(email), token)
}

func (s *TokenStore) SaveVerificationCode(ctx context.Context, email, code string) error {
	return s.save(ctx, verifyKey(email), code, verificationTTL)
}

func (s *TokenStore) ConsumeVerificationCode(ctx context.Context, email, code string) (bool, error) {
	return s.consume(ctx, verifyKey(email), code)
}

func (s *TokenStore) save(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// consume fetches and compares the stored value, deleting it on a match so a
// token can never be replayed.
func (s *TokenStore) consume(ctx context.Context, key, value string) (bool, error) {
	stored, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read token: %w", err)
	}
	if stored != value {
		return false, nil
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return false, fmt.Errorf("delete token: %w", err)
	}
	return true, nil
}

func resetKey(email string) string {
	return fmt.Sprintf("%s:%s", resetKeyPrefix, email)
}

func verifyKey(email string) string {
	return fmt.Sprintf("%s:%s", verifyKeyPrefix, email)
}
