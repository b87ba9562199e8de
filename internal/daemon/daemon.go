package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/b0ase/path402/apps/baguette/internal/config"
	"github.com/b0ase/path402/apps/baguette/internal/db"
	"github.com/b0ase/path402/apps/baguette/internal/market"
	"github.com/b0ase/path402/apps/baguette/internal/mcpserver"
	"github.com/b0ase/path402/apps/baguette/internal/server"
	"github.com/b0ase/path402/apps/baguette/internal/source"
	"github.com/b0ase/path402/apps/baguette/internal/voting"
	"github.com/b0ase/path402/apps/baguette/internal/wallet"
)

// Version is reported by /health and the MCP handshake.
var Version = "0.1.0"

const metaInstanceID = "instance_id"

// Daemon orchestrates the baguette subsystems.
type Daemon struct {
	cfg        *config.Config
	log        *zap.Logger
	instanceID string
	startTime  time.Time
	source     source.Source
	panel      *voting.Panel
	httpSrv    *server.Server
	dbOpen     bool
	stopCh     chan struct{}
}

// New creates a new daemon instance.
func New(cfg *config.Config, log *zap.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Daemon{cfg: cfg, log: log, stopCh: make(chan struct{})}, nil
}

// Start brings up the data source, wallet, voting panel and, when
// serveHTTP is set, the HTTP API.
func (d *Daemon) Start(ctx context.Context, serveHTTP bool) error {
	d.startTime = time.Now()
	log := d.log.Named("daemon")

	// 1. Open database when the snapshot lives in SQLite
	if d.cfg.Source.Kind == config.SourceSQLite {
		if err := d.openDB(ctx); err != nil {
			return err
		}
	}
	if d.instanceID == "" {
		d.instanceID = uuid.NewString()
	}
	log.Info("instance", zap.String("id", d.instanceID), zap.String("version", Version))

	// 2. Data source
	d.source = buildSource(d.cfg.Source)
	log.Info("data source ready", zap.String("kind", d.cfg.Source.Kind), zap.Duration("delay", d.cfg.Source.Delay))

	// 3. Wallet provider. A missing wallet is not an error: the panel
	//    reports it to the user instead.
	provider, err := wallet.FromConfig(d.cfg.Wallet.Key, d.cfg.Wallet.Address, d.log.Named("wallet"))
	switch {
	case errors.Is(err, wallet.ErrNoProvider):
		log.Info("no wallet configured; voting requires one")
		provider = nil
	case err != nil:
		log.Warn("wallet load failed, continuing without wallet", zap.Error(err))
		provider = nil
	}

	// 4. Voting panel
	d.panel = voting.NewPanel(provider, voting.Period{
		PoolAmount: d.cfg.Voting.PoolAmount,
		EndsAt:     d.cfg.Voting.EndsAt,
		Quarter:    d.cfg.Voting.Quarter,
	}, d.log)
	d.panel.CheckConnection(ctx)

	go d.statusLoop()

	// 5. HTTP API
	if serveHTTP {
		d.httpSrv = server.New(d.cfg.API.Bind, d.cfg.API.Port, d, d.source, d.panel, d.log)
		port, err := d.httpSrv.Start()
		if err != nil {
			return fmt.Errorf("http start: %w", err)
		}
		log.Info("dashboard available", zap.String("url", fmt.Sprintf("http://%s:%d/", d.cfg.API.Bind, port)))
	}

	log.Info("all systems online")
	return nil
}

// openDB opens the snapshot database, seeds it when configured, and loads
// the persisted instance id.
func (d *Daemon) openDB(ctx context.Context) error {
	log := d.log.Named("daemon")
	db.SetLogger(d.log)
	if err := db.Open(d.cfg.DBPath()); err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	d.dbOpen = true

	if d.cfg.Source.Seed {
		if err := db.SaveSnapshot(ctx, market.SampleData()); err != nil {
			return fmt.Errorf("seed snapshot: %w", err)
		}
		log.Info("seeded sample snapshot")
	}
	if at, err := db.SnapshotTime(ctx); err == nil {
		log.Info("snapshot on disk", zap.Time("saved_at", at))
	} else {
		log.Warn("no snapshot on disk; dashboard fetches will fail until one is saved")
	}

	id, err := db.GetMeta(ctx, metaInstanceID)
	if err != nil || id == "" {
		id = uuid.NewString()
		if err := db.SetMeta(ctx, metaInstanceID, id); err != nil {
			log.Warn("persist instance id", zap.Error(err))
		}
	}
	d.instanceID = id
	return nil
}

func buildSource(cfg config.SourceConfig) source.Source {
	switch cfg.Kind {
	case config.SourceSQLite:
		return source.Instrumented(cfg.Kind, source.SQLite{Delay: cfg.Delay})
	default:
		return source.Instrumented(cfg.Kind, source.Sample{Delay: cfg.Delay, Fail: cfg.Fail})
	}
}

// RunMCP serves the MCP tools on stdio until ctx ends or the client
// disconnects. Start must have been called.
func (d *Daemon) RunMCP(ctx context.Context) error {
	return mcpserver.New(Version, d, d.source, d.panel, d.log).Run(ctx)
}

func (d *Daemon) statusLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()
	log := d.log.Named("daemon")
	for {
		select {
		case <-d.stopCh:
			return
		case <-ticker.C:
			st := d.panel.Status()
			log.Info("status",
				zap.Duration("uptime", d.Uptime().Round(time.Second)),
				zap.Stringer("wallet", st.State),
				zap.Int("selected", st.Selected))
		}
	}
}

// Stop shuts down all subsystems.
func (d *Daemon) Stop() {
	log := d.log.Named("daemon")
	log.Info("shutting down")
	close(d.stopCh)

	if d.httpSrv != nil {
		d.httpSrv.Stop()
	}
	if d.dbOpen {
		db.Close()
	}
	log.Info("shutdown complete")
}

// --- Status accessors (used by HTTP API and MCP) ---

func (d *Daemon) InstanceID() string    { return d.instanceID }
func (d *Daemon) Version() string       { return Version }
func (d *Daemon) Uptime() time.Duration { return time.Since(d.startTime) }
func (d *Daemon) SourceKind() string    { return d.cfg.Source.Kind }

// Panel exposes the voting panel.
func (d *Daemon) Panel() *voting.Panel { return d.panel }

// Source exposes the instrumented data source.
func (d *Daemon) Source() source.Source { return d.source }
