package risk

import (
	"context"
	"time"
)

// Cache stores generated summaries by cycle id. Backends treat their own
// failures as misses.
type Cache interface {
	Get(ctx context.Context, cycleID string) (string, bool)
	Set(ctx context.Context, cycleID, text string, ttl time.Duration)
	Delete(ctx context.Context, cycleID string)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (string, bool) {
	return "", false
}

func (noopCache) Set(context.Context, string, string, time.Duration) {}

func (noopCache) Delete(context.Context, string) {}
