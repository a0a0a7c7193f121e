package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/playmatatu/minigolf/internal/logging"
	"github.com/redis/go-redis/v9"
)

// Connect parses a redis:// URL and waits for the server to answer. The
// client carries session snapshots and the game_events channel.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.ReadTimeout = 2 * time.Second
	opt.WriteTimeout = 2 * time.Second

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opt.Addr, err)
	}

	logging.S().Infof("[REDIS] connected to %s db=%d", opt.Addr, opt.DB)
	return client, nil
}
