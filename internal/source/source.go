// Package source supplies dashboard snapshots. A Source stands in for a
// real price-feed or indexer client: one attempt, one outcome.
package source

import (
	"context"
	"errors"
	"time"

	"github.com/b0ase/path402/apps/baguette/internal/market"
	"github.com/b0ase/path402/apps/baguette/internal/metrics"
)

// ErrFetch marks every failed snapshot fetch.
var ErrFetch = errors.New("failed to fetch dashboard data")

// Source yields a complete snapshot or an error.
type Source interface {
	Fetch(ctx context.Context) (*market.DashboardData, error)
}

// Func adapts a function to Source.
type Func func(ctx context.Context) (*market.DashboardData, error)

func (f Func) Fetch(ctx context.Context) (*market.DashboardData, error) { return f(ctx) }

// Instrumented records fetch count and latency for src under name.
func Instrumented(name string, src Source) Source {
	return Func(func(ctx context.Context) (*market.DashboardData, error) {
		start := time.Now()
		data, err := src.Fetch(ctx)
		metrics.SourceFetchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		result := "success"
		if err != nil {
			result = "error"
		}
		metrics.SourceFetchTotal.WithLabelValues(name, result).Inc()
		return data, err
	})
}

// wait sleeps for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
