package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"portfolio-service/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewClient returns nil without an error when no address is configured, so callers can
// treat Redis-backed features as optional.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		log.Println("Warning: Redis address is empty, rate limiting is disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("Connected to Redis at %s (db %d)", cfg.Address, cfg.DB)
	return client, nil
}
