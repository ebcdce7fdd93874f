package service

import (
	"context"
	"errors"
	"time"

	"skillshare/internal/cache"
	"skillshare/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ExchangeStore holds short-lived, single-use codes that an OAuth2
// callback hands to the browser, which redeems them for the real token.
// Codes live in Redis with an explicit TTL so an unredeemed code
// evaporates instead of accumulating.
type ExchangeStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewExchangeStore(client *redis.Client, ttl time.Duration) *ExchangeStore {
	return &ExchangeStore{client: client, ttl: ttl}
}

// Put stores the token under a fresh opaque code and returns the code.
func (s *ExchangeStore) Put(ctx context.Context, token string) (string, error) {
	if s.client == nil {
		return "", models.NewInternalError(errors.New("exchange store unavailable"))
	}

	code := uuid.NewString()
	if err := s.client.Set(ctx, cache.ExchangeKey(code), token, s.ttl).Err(); err != nil {
		return "", models.NewInternalError(err)
	}
	return code, nil
}

// Redeem returns the token for a code and burns the code. A second
// redemption, or one past the TTL, fails the same way as a bogus code.
func (s *ExchangeStore) Redeem(ctx context.Context, code string) (string, error) {
	if s.client == nil {
		return "", models.NewInternalError(errors.New("exchange store unavailable"))
	}

	token, err := s.client.GetDel(ctx, cache.ExchangeKey(code)).Result()
	if err == redis.Nil {
		return "", models.NewUnauthorizedError("Invalid or expired exchange code")
	}
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}
