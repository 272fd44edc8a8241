package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"livestock-invest-go/internal/config"

	goredis "github.com/redis/go-redis/v9"
)

// NewClient connects to cfg.Addr and pings it. It returns nil, nil when no
// address is configured.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	addr := strings.ReplaceAll(strings.TrimSpace(cfg.Addr), " ", "")
	if addr == "" {
		return nil, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
