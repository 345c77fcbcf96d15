package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/asifdev/trendcart-backend/config"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

const blacklistPrefix = "token:blacklist:"

// Init initializes the Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client = nil
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// BlacklistToken marks an access token as revoked until it would have expired.
// Used on logout so a stolen token cannot outlive the session.
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if client == nil {
		return nil
	}
	if expiry <= 0 {
		return nil
	}
	return client.Set(ctx, blacklistPrefix+token, "1", expiry).Err()
}

// IsTokenBlacklisted reports whether a token was revoked by logout.
// Without a Redis connection the check is skipped.
func IsTokenBlacklisted(ctx context.Context, token string) bool {
	if client == nil {
		return false
	}
	n, err := client.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		logger.Error("Failed to check token blacklist", err, nil)
		return false
	}
	return n > 0
}
