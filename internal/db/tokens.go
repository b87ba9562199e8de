package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/b0ase/path402/apps/baguette/internal/market"
)

// SaveToken replaces a token's snapshot, price history and top holders in
// one transaction.
func SaveToken(ctx context.Context, name string, t market.TokenStats) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tokens (name, price, volume, holders, market_cap, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			price = excluded.price,
			volume = excluded.volume,
			holders = excluded.holders,
			market_cap = excluded.market_cap,
			updated_at = excluded.updated_at`,
		name, t.Price, t.Volume, t.Holders, t.MarketCap, time.Now().Unix()); err != nil {
		return fmt.Errorf("upsert token: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM price_history WHERE token = ?`, name); err != nil {
		return fmt.Errorf("clear price history: %w", err)
	}
	for _, p := range t.PriceHistory {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO price_history (token, day, price) VALUES (?, ?, ?)`,
			name, p.Date, p.Price); err != nil {
			return fmt.Errorf("insert price point %s: %w", p.Date, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM top_holders WHERE token = ?`, name); err != nil {
		return fmt.Errorf("clear top holders: %w", err)
	}
	for i, h := range t.TopHolders {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO top_holders (token, rank, address, amount) VALUES (?, ?, ?, ?)`,
			name, i+1, h.Address, h.Amount); err != nil {
			return fmt.Errorf("insert holder %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// GetToken loads a token snapshot. Returns sql.ErrNoRows when the token
// has never been saved.
func GetToken(ctx context.Context, name string) (*market.TokenStats, error) {
	t := &market.TokenStats{}
	err := db.QueryRowContext(ctx, `SELECT price, volume, holders, market_cap
		FROM tokens WHERE name = ?`, name).Scan(&t.Price, &t.Volume, &t.Holders, &t.MarketCap)
	if err != nil {
		return nil, err
	}

	if t.PriceHistory, err = getPriceHistory(ctx, name); err != nil {
		return nil, err
	}
	if t.TopHolders, err = getTopHolders(ctx, name); err != nil {
		return nil, err
	}
	return t, nil
}

func getPriceHistory(ctx context.Context, name string) ([]market.PricePoint, error) {
	rows, err := db.QueryContext(ctx, `SELECT day, price FROM price_history
		WHERE token = ? ORDER BY day`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []market.PricePoint{}
	for rows.Next() {
		var p market.PricePoint
		if err := rows.Scan(&p.Date, &p.Price); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func getTopHolders(ctx context.Context, name string) ([]market.Holder, error) {
	rows, err := db.QueryContext(ctx, `SELECT address, amount FROM top_holders
		WHERE token = ? ORDER BY rank`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holders := []market.Holder{}
	for rows.Next() {
		var h market.Holder
		if err := rows.Scan(&h.Address, &h.Amount); err != nil {
			return nil, err
		}
		holders = append(holders, h)
	}
	return holders, rows.Err()
}

// SaveSnapshot stores both tokens and records when the snapshot was taken.
func SaveSnapshot(ctx context.Context, d *market.DashboardData) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := SaveToken(ctx, market.Catguette, d.Catguette); err != nil {
		return fmt.Errorf("save %s: %w", market.Catguette, err)
	}
	if err := SaveToken(ctx, market.Doguette, d.Doguette); err != nil {
		return fmt.Errorf("save %s: %w", market.Doguette, err)
	}
	return SetMeta(ctx, metaSnapshotAt, time.Now().UTC().Format(time.RFC3339))
}

// SnapshotTime reports when SaveSnapshot last ran.
func SnapshotTime(ctx context.Context) (time.Time, error) {
	v, err := GetMeta(ctx, metaSnapshotAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, v)
}
