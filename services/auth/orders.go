package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	orderBindingPrefix = "otp:order:"
	// OrderBindingTTL outlives the gateway's OTP expiry so resends stay valid.
	OrderBindingTTL = 30 * time.Minute
)

// ErrOrderNotFound is returned when no account is bound to an order id.
var ErrOrderNotFound = errors.New("otp order not found")

// OrderStore remembers which account an OTP order was started for.
type OrderStore interface {
	Bind(ctx context.Context, orderID, accountID string) error
	Resolve(ctx context.Context, orderID string) (string, error)
	Touch(ctx context.Context, orderID string) error
	Release(ctx context.Context, orderID string) error
}

// RedisOrderStore keeps order bindings in Redis with a TTL.
type RedisOrderStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisOrderStore(client *redis.Client, ttl time.Duration) *RedisOrderStore {
	if ttl <= 0 {
		ttl = OrderBindingTTL
	}
	return &RedisOrderStore{client: client, ttl: ttl}
}

func (s *RedisOrderStore) Bind(ctx context.Context, orderID, accountID string) error {
	if err := s.client.Set(ctx, orderBindingPrefix+orderID, accountID, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to bind otp order: %w", err)
	}
	return nil
}

func (s *RedisOrderStore) Resolve(ctx context.Context, orderID string) (string, error) {
	accountID, err := s.client.Get(ctx, orderBindingPrefix+orderID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrOrderNotFound
		}
		return "", fmt.Errorf("failed to resolve otp order: %w", err)
	}
	return accountID, nil
}

func (s *RedisOrderStore) Touch(ctx context.Context, orderID string) error {
	return s.client.Expire(ctx, orderBindingPrefix+orderID, s.ttl).Err()
}

func (s *RedisOrderStore) Release(ctx context.Context, orderID string) error {
	return s.client.Del(ctx, orderBindingPrefix+orderID).Err()
}
