package initializers

import (
	"context"
	"fmt"
	"time"

	"github.com/Kariqs/agromarket-api/config"
	"github.com/redis/go-redis/v9"
)

// ConnectToRedis returns nil, nil when no address is configured.
func ConnectToRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
