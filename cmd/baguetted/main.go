package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/b0ase/path402/apps/baguette/internal/config"
	"github.com/b0ase/path402/apps/baguette/internal/daemon"
	"github.com/b0ase/path402/apps/baguette/internal/logging"
)

var (
	orange = color.New(color.FgHiYellow, color.Bold).SprintFunc()
	dim    = color.New(color.FgHiBlack).SprintFunc()
)

func banner() {
	fmt.Println(orange(`
   ____                         _   _
  | __ )  __ _  __ _ _   _  ___| |_| |_ ___
  |  _ \ / _' |/ _' | | | |/ _ \ __| __/ _ \
  | |_) | (_| | (_| | |_| |  __/ |_| ||  __/
  |____/ \__,_|\__, |\__,_|\___|\__|\__\___|
               |___/`))
	fmt.Println("  " + dim("Catguette vs Doguette dashboard  v"+daemon.Version))
	fmt.Println("  " + orange("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println()
}

func main() {
	cfgPath := flag.String("config", "", "path to baguette.yaml")
	mcpMode := flag.Bool("mcp", false, "serve MCP tools on stdio instead of HTTP")
	flag.Parse()

	// stdout belongs to the MCP transport in -mcp mode.
	if !*mcpMode {
		banner()
	}

	// Resolve config path
	if *cfgPath == "" {
		home, _ := os.UserHomeDir()
		*cfgPath = filepath.Join(home, ".baguette", "baguette.yaml")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	mainLog := log.Named("main")

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		mainLog.Fatal("create data dir", zap.String("dir", cfg.DataDir), zap.Error(err))
	}
	mainLog.Info("config loaded", zap.String("path", *cfgPath), zap.String("data_dir", cfg.DataDir))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := daemon.New(cfg, log)
	if err != nil {
		mainLog.Fatal("create daemon", zap.Error(err))
	}
	if err := d.Start(ctx, !*mcpMode); err != nil {
		mainLog.Fatal("start daemon", zap.Error(err))
	}

	if *mcpMode {
		if err := d.RunMCP(ctx); err != nil && ctx.Err() == nil {
			mainLog.Error("MCP server", zap.Error(err))
		}
	} else {
		<-ctx.Done()
		mainLog.Info("received signal, shutting down")
	}

	d.Stop()
	mainLog.Info("goodbye")
}
