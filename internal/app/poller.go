package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/tote/internal/catalog"
)

const (
	defaultPollInterval = 10 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that refreshes the catalog
// cache. Failures back off exponentially up to maxBackoff. It returns
// immediately.
func StartPoller(ctx context.Context, cache *catalog.Cache, src catalog.Source, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		for {
			if err := refresh(ctx, cache, src); err != nil {
				failures++
				logger.Warn("catalog poll failed", "error", err, "failures", failures)
			} else {
				failures = 0
			}

			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

func refresh(ctx context.Context, cache *catalog.Cache, src catalog.Source) error {
	products, err := src.Products(ctx)
	cache.Update(products, err)
	return err
}

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
