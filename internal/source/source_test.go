package source

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/b0ase/path402/apps/baguette/internal/db"
	"github.com/b0ase/path402/apps/baguette/internal/market"
)

func TestSample_ReturnsSnapshot(t *testing.T) {
	data, err := Sample{}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if data.Catguette.Volume != 156789 || data.Doguette.Volume != 167890 {
		t.Errorf("volumes = %v / %v", data.Catguette.Volume, data.Doguette.Volume)
	}
}

func TestSample_Fail(t *testing.T) {
	data, err := Sample{Fail: true}.Fetch(context.Background())
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("err = %v, want ErrFetch", err)
	}
	if data != nil {
		t.Error("failed fetch returned partial data")
	}
}

func TestSample_Delay(t *testing.T) {
	start := time.Now()
	if _, err := (Sample{Delay: 20 * time.Millisecond}).Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("fetch returned before the configured delay")
	}
}

func TestSample_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Sample{Delay: time.Hour}.Fetch(ctx)
	if !errors.Is(err, ErrFetch) || !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want ErrFetch wrapping context.Canceled", err)
	}
}

func TestInstrumented_PassesThrough(t *testing.T) {
	calls := 0
	src := Instrumented("test", Func(func(ctx context.Context) (*market.DashboardData, error) {
		calls++
		return market.SampleData(), nil
	}))
	if _, err := src.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	failing := Instrumented("test", Sample{Fail: true})
	if _, err := failing.Fetch(context.Background()); !errors.Is(err, ErrFetch) {
		t.Errorf("err = %v", err)
	}
}

func TestSQLite(t *testing.T) {
	if err := db.Open(filepath.Join(t.TempDir(), "source.db")); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	_, err := SQLite{}.Fetch(ctx)
	if !errors.Is(err, ErrFetch) || !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("empty db: err = %v", err)
	}

	if err := db.SaveSnapshot(ctx, market.SampleData()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	data, err := SQLite{}.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if data.Catguette.Holders != 2345 || len(data.Doguette.TopHolders) != 3 {
		t.Errorf("data = %+v", data)
	}
}
