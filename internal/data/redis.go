package data

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Krisnadwisaputra/Lumos-Trade/internal/config"
)

type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis and verifies the connection. Callers are
// expected to keep running without a cache when this fails.
func NewRedis(cfg config.Redis) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host + ":" + cfg.Port,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &Redis{Client: client}, nil
}

func (r *Redis) Close() error {
	return r.Client.Close()
}
