package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/b0ase/path402/apps/baguette/internal/market"
)

func setupTestDB(t *testing.T) func() {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	if err := Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return func() {
		Close()
		os.Remove(path)
	}
}

func TestOpenClose(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	if DB() == nil {
		t.Fatal("DB() returned nil after Open")
	}
}

func TestMetaGetSet(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if err := SetMeta(ctx, "test_key", "test_value"); err != nil {
		t.Fatalf("SetMeta: %v", err)
	}
	val, err := GetMeta(ctx, "test_key")
	if err != nil {
		t.Fatalf("GetMeta: %v", err)
	}
	if val != "test_value" {
		t.Errorf("GetMeta = %q, want %q", val, "test_value")
	}

	// Overwrite
	SetMeta(ctx, "test_key", "new_value")
	val, _ = GetMeta(ctx, "test_key")
	if val != "new_value" {
		t.Errorf("after overwrite: %q, want %q", val, "new_value")
	}
}

func TestGetToken_Missing(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	_, err := GetToken(context.Background(), market.Catguette)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestSnapshotRoundtrip(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	want := market.SampleData()
	if err := SaveSnapshot(ctx, want); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := GetToken(ctx, market.Doguette)
	if err != nil {
		t.Fatalf("GetToken: %v", err)
	}
	if got.Volume != 167890 || got.Holders != 2456 {
		t.Errorf("doguette = %+v", got)
	}
	if len(got.PriceHistory) != 3 || got.PriceHistory[2].Date != "2024-01-03" {
		t.Errorf("price history = %+v", got.PriceHistory)
	}
	if len(got.TopHolders) != 3 || got.TopHolders[0].Address != "0xabcd...efgh" {
		t.Errorf("top holders = %+v", got.TopHolders)
	}

	at, err := SnapshotTime(ctx)
	if err != nil {
		t.Fatalf("SnapshotTime: %v", err)
	}
	if at.IsZero() {
		t.Error("snapshot time not recorded")
	}
}

func TestSaveToken_ReplacesWholesale(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	stats := market.SampleData().Catguette
	if err := SaveToken(ctx, market.Catguette, stats); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	stats.TopHolders = stats.TopHolders[:1]
	stats.PriceHistory = stats.PriceHistory[:2]
	stats.Price = 0.0003
	if err := SaveToken(ctx, market.Catguette, stats); err != nil {
		t.Fatalf("SaveToken again: %v", err)
	}

	got, err := GetToken(ctx, market.Catguette)
	if err != nil {
		t.Fatalf("GetToken: %v", err)
	}
	if len(got.TopHolders) != 1 || len(got.PriceHistory) != 2 || got.Price != 0.0003 {
		t.Errorf("snapshot not replaced: %+v", got)
	}
}

func TestSaveSnapshot_RejectsInvalid(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	d := market.SampleData()
	d.Catguette.Holders = -1
	if err := SaveSnapshot(context.Background(), d); !errors.Is(err, market.ErrInvalidSnapshot) {
		t.Errorf("err = %v, want ErrInvalidSnapshot", err)
	}
}

func TestSnapshotTime_NeverSaved(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	at, err := SnapshotTime(context.Background())
	if err != nil {
		t.Fatalf("SnapshotTime: %v", err)
	}
	if !at.IsZero() {
		t.Errorf("at = %v, want zero", at)
	}
}
