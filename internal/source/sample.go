package source

import (
	"context"
	"fmt"
	"time"

	"github.com/b0ase/path402/apps/baguette/internal/market"
)

// Sample serves the compiled-in snapshot after Delay, simulating network
// latency. With Fail set every fetch fails after the delay.
type Sample struct {
	Delay time.Duration
	Fail  bool
}

func (s Sample) Fetch(ctx context.Context) (*market.DashboardData, error) {
	if err := wait(ctx, s.Delay); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if s.Fail {
		return nil, fmt.Errorf("%w: sample source configured to fail", ErrFetch)
	}
	return market.SampleData(), nil
}
