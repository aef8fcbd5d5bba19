// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"adminpanel/config"

	"github.com/go-redis/redis/v8"
)

// NewOTPCacheClient connects to the Redis database holding OTP order
// bindings and, for the local gateway, pending codes.
func NewOTPCacheClient(cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisOTPDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (OTP cache): %w", err)
	}
	return client, nil
}
