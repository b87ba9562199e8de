package source

import (
	"context"
	"fmt"
	"time"

	"github.com/b0ase/path402/apps/baguette/internal/db"
	"github.com/b0ase/path402/apps/baguette/internal/market"
)

// SQLite reads the snapshot stored in the daemon's database. The db
// package must be open.
type SQLite struct {
	Delay time.Duration
}

func (s SQLite) Fetch(ctx context.Context) (*market.DashboardData, error) {
	if err := wait(ctx, s.Delay); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	cat, err := db.GetToken(ctx, market.Catguette)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", ErrFetch, market.Catguette, err)
	}
	dog, err := db.GetToken(ctx, market.Doguette)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", ErrFetch, market.Doguette, err)
	}

	data := &market.DashboardData{Catguette: *cat, Doguette: *dog}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return data, nil
}
