package risk

import (
	"context"
	"sync"
	"time"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	"livestock-invest-go/pkg/logger"

	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout  = 8 * time.Second
	defaultCacheTTL = 6 * time.Hour
)

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

type Service struct {
	summarizer Summarizer
	cache      Cache
	observer   Observer
	log        logger.Logger
	cfg        Config

	group singleflight.Group
	warm  sync.WaitGroup
}

// NewService builds the risk summary service. A nil summarizer serves the
// fallback text for every cycle.
func NewService(summarizer Summarizer, cache Cache, cfg Config, log logger.Logger) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	return &Service{
		summarizer: summarizer,
		cache:      cache,
		observer:   noopObserver{},
		log:        log,
		cfg:        cfg,
	}
}

func (s *Service) SetObserver(observer Observer) {
	if observer == nil {
		observer = noopObserver{}
	}
	s.observer = observer
}

// Summary never fails: errors and timeouts degrade to FallbackText.
func (s *Service) Summary(ctx context.Context, cycle cyclesdomain.Cycle) Summary {
	result := Summary{CycleID: cycle.ID}

	if s.summarizer == nil {
		s.observer.ObserveSummary(OutcomeFallback)
		result.Text = FallbackText
		result.Fallback = true
		return result
	}

	if text, ok := s.cache.Get(ctx, cycle.ID); ok {
		s.observer.ObserveSummary(OutcomeCached)
		result.Text = text
		result.Cached = true
		return result
	}

	ch := s.group.DoChan(cycle.ID, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeout)
		defer cancel()

		text, err := s.summarizer.Summarize(callCtx, BriefFromCycle(cycle))
		if err != nil {
			return "", err
		}
		s.cache.Set(callCtx, cycle.ID, text, s.cfg.CacheTTL)
		return text, nil
	})

	select {
	case <-ctx.Done():
		s.log.Warn("risk summary abandoned", "cycle_id", cycle.ID, "error", ctx.Err())
	case res := <-ch:
		if res.Err == nil {
			s.observer.ObserveSummary(OutcomeGenerated)
			result.Text = res.Val.(string)
			return result
		}
		s.log.Warn("risk summary failed", "cycle_id", cycle.ID, "error", res.Err)
	}

	s.observer.ObserveSummary(OutcomeFallback)
	result.Text = FallbackText
	result.Fallback = true
	return result
}

// Warm requests the summary in the background so the first reader hits the cache.
func (s *Service) Warm(cycle cyclesdomain.Cycle) {
	if s.summarizer == nil {
		return
	}

	s.warm.Add(1)
	go func() {
		defer s.warm.Done()
		s.Summary(context.Background(), cycle)
	}()
}

// Invalidate drops the cached summary of a cycle.
func (s *Service) Invalidate(ctx context.Context, cycleID string) {
	s.cache.Delete(ctx, cycleID)
}

// Wait blocks until all warm-up requests have finished.
func (s *Service) Wait() {
	s.warm.Wait()
}
