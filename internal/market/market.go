// Package market holds the token snapshot types shown on the dashboard.
package market

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the format of PricePoint.Date.
const DateLayout = "2006-01-02"

// Token names, in display order.
const (
	Catguette = "Catguette"
	Doguette  = "Doguette"
)

var ErrInvalidSnapshot = errors.New("invalid dashboard snapshot")

type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

type Holder struct {
	Address string  `json:"address"`
	Amount  float64 `json:"amount"`
}

// TokenStats is an immutable snapshot of one token. A refresh replaces it
// wholesale.
type TokenStats struct {
	Price        float64      `json:"price"`
	Volume       float64      `json:"volume"`
	Holders      int          `json:"holders"`
	MarketCap    float64      `json:"marketCap"`
	PriceHistory []PricePoint `json:"priceHistory"`
	TopHolders   []Holder     `json:"topHolders"`
}

// DashboardData pairs both tokens. A source yields a complete value or an
// error, never one side alone.
type DashboardData struct {
	Catguette TokenStats `json:"catguette"`
	Doguette  TokenStats `json:"doguette"`
}

// Validate checks both tokens.
func (d *DashboardData) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: missing data", ErrInvalidSnapshot)
	}
	if err := d.Catguette.validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSnapshot, Catguette, err)
	}
	if err := d.Doguette.validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSnapshot, Doguette, err)
	}
	return nil
}

func (t *TokenStats) validate() error {
	if t.Price < 0 || t.Volume < 0 || t.MarketCap < 0 {
		return errors.New("negative price, volume or market cap")
	}
	if t.Holders < 0 {
		return errors.New("negative holder count")
	}
	var prev time.Time
	for i, p := range t.PriceHistory {
		day, err := time.Parse(DateLayout, p.Date)
		if err != nil {
			return fmt.Errorf("price point %d: %w", i, err)
		}
		if i > 0 && !day.After(prev) {
			return fmt.Errorf("price point %d: %s not after %s", i, p.Date, prev.Format(DateLayout))
		}
		if p.Price < 0 {
			return fmt.Errorf("price point %d: negative price", i)
		}
		prev = day
	}
	for i, h := range t.TopHolders {
		if h.Address == "" {
			return fmt.Errorf("holder %d: empty address", i)
		}
	}
	return nil
}

// Clone returns a deep copy so callers cannot patch a shared snapshot.
func (d *DashboardData) Clone() *DashboardData {
	if d == nil {
		return nil
	}
	return &DashboardData{
		Catguette: d.Catguette.clone(),
		Doguette:  d.Doguette.clone(),
	}
}

func (t TokenStats) clone() TokenStats {
	t.PriceHistory = append([]PricePoint(nil), t.PriceHistory...)
	t.TopHolders = append([]Holder(nil), t.TopHolders...)
	return t
}

// Token returns the stats for a display name.
func (d *DashboardData) Token(name string) (TokenStats, bool) {
	switch name {
	case Catguette:
		return d.Catguette, true
	case Doguette:
		return d.Doguette, true
	}
	return TokenStats{}, false
}
