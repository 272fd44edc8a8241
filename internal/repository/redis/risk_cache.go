package redis

import (
	"context"
	"errors"
	"time"

	"livestock-invest-go/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

const riskKeyPrefix = "livestock:risk-summary:"

// RiskSummaryCache shares generated risk summaries between instances.
// Redis failures are logged and reported as misses.
type RiskSummaryCache struct {
	client goredis.Cmdable
	log    logger.Logger
}

func NewRiskSummaryCache(client goredis.Cmdable, log logger.Logger) *RiskSummaryCache {
	if log == nil {
		log = logger.Nop()
	}
	return &RiskSummaryCache{client: client, log: log}
}

func (c *RiskSummaryCache) Get(ctx context.Context, cycleID string) (string, bool) {
	text, err := c.client.Get(ctx, riskKey(cycleID)).Result()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("redis: risk summary get failed", "cycle_id", cycleID, "error", err)
		}
		return "", false
	}
	return text, text != ""
}

func (c *RiskSummaryCache) Set(ctx context.Context, cycleID, text string, ttl time.Duration) {
	if text == "" || ttl <= 0 {
		c.Delete(ctx, cycleID)
		return
	}
	if err := c.client.Set(ctx, riskKey(cycleID), text, ttl).Err(); err != nil {
		c.log.Warn("redis: risk summary set failed", "cycle_id", cycleID, "error", err)
	}
}

func (c *RiskSummaryCache) Delete(ctx context.Context, cycleID string) {
	if err := c.client.Del(ctx, riskKey(cycleID)).Err(); err != nil {
		c.log.Warn("redis: risk summary delete failed", "cycle_id", cycleID, "error", err)
	}
}

func riskKey(cycleID string) string {
	return riskKeyPrefix + cycleID
}
