package inmemory

import (
	"context"
	"sync"
	"time"
)

type RiskSummaryCache struct {
	mu    sync.RWMutex
	items map[string]summaryItem
	now   func() time.Time
}

type summaryItem struct {
	text      string
	expiresAt time.Time
}

func NewRiskSummaryCache() *RiskSummaryCache {
	return &RiskSummaryCache{
		items: make(map[string]summaryItem),
		now:   time.Now,
	}
}

func (c *RiskSummaryCache) Get(_ context.Context, cycleID string) (string, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[cycleID]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[cycleID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, cycleID)
		}
		c.mu.Unlock()
		return "", false
	}

	return item.text, true
}

func (c *RiskSummaryCache) Set(ctx context.Context, cycleID, text string, ttl time.Duration) {
	if text == "" || ttl <= 0 {
		c.Delete(ctx, cycleID)
		return
	}

	c.mu.Lock()
	c.items[cycleID] = summaryItem{
		text:      text,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *RiskSummaryCache) Delete(_ context.Context, cycleID string) {
	c.mu.Lock()
	delete(c.items, cycleID)
	c.mu.Unlock()
}

func (c *RiskSummaryCache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]summaryItem)
	c.mu.Unlock()
}
