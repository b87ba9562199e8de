package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceSample = "sample"
	SourceSQLite = "sqlite"
)

type APIConfig struct {
	Port int    `yaml:"port"`
	Bind string `yaml:"bind"`
}

type SourceConfig struct {
	Kind  string        `yaml:"kind"`  // "sample" or "sqlite"
	Delay time.Duration `yaml:"delay"` // Artificial latency before a snapshot is returned
	Fail  bool          `yaml:"fail"`  // Sample source only: always fail the fetch
	Seed  bool          `yaml:"seed"`  // SQLite source only: write the sample snapshot on boot
}

type WalletConfig struct {
	Key     string `yaml:"key"`     // WIF private key; enables signing
	Address string `yaml:"address"` // Watch-only address (no private key needed)
}

type VotingConfig struct {
	PoolAmount string `yaml:"pool_amount"`
	EndsAt     string `yaml:"ends_at"`
	Quarter    string `yaml:"quarter"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	DataDir string       `yaml:"data_dir"`
	API     APIConfig    `yaml:"api"`
	Source  SourceConfig `yaml:"source"`
	Wallet  WalletConfig `yaml:"wallet"`
	Voting  VotingConfig `yaml:"voting"`
	Log     LogConfig    `yaml:"log"`
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir: filepath.Join(home, ".baguette"),
		API: APIConfig{
			Port: 8404,
			Bind: "127.0.0.1",
		},
		Source: SourceConfig{
			Kind:  SourceSample,
			Delay: time.Second,
		},
		Voting: VotingConfig{
			PoolAmount: "156.8 MATIC",
			EndsAt:     "March 31, 2025",
			Quarter:    "Q1 2025",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML config file and merges it with defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		// No config file: defaults + env overlay
		data = nil
	}
	return parse(cfg, data)
}

// LoadFromBytes parses YAML config from bytes and merges with defaults.
func LoadFromBytes(data []byte) (*Config, error) {
	return parse(DefaultConfig(), data)
}

func parse(cfg *Config, data []byte) (*Config, error) {
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Expand ~ in data_dir
	if len(cfg.DataDir) > 0 && cfg.DataDir[0] == '~' {
		home, _ := os.UserHomeDir()
		cfg.DataDir = filepath.Join(home, cfg.DataDir[1:])
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables on top of config values.
func (c *Config) applyEnv() error {
	if v := os.Getenv("BAGUETTE_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("BAGUETTE_BIND"); v != "" {
		c.API.Bind = v
	}
	if v := os.Getenv("BAGUETTE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BAGUETTE_PORT: %w", err)
		}
		c.API.Port = port
	}
	if v := os.Getenv("BAGUETTE_SOURCE"); v != "" {
		c.Source.Kind = v
	}
	if v := os.Getenv("BAGUETTE_FETCH_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid BAGUETTE_FETCH_DELAY: %w", err)
		}
		c.Source.Delay = d
	}
	if v := os.Getenv("BAGUETTE_FETCH_FAIL"); v != "" {
		fail, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid BAGUETTE_FETCH_FAIL: %w", err)
		}
		c.Source.Fail = fail
	}
	if v := os.Getenv("BAGUETTE_WALLET_KEY"); v != "" {
		c.Wallet.Key = v
	}
	if v := os.Getenv("BAGUETTE_WALLET_ADDRESS"); v != "" {
		c.Wallet.Address = v
	}
	return nil
}

// Validate rejects values the daemon cannot start with.
func (c *Config) Validate() error {
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("api.port %d out of range", c.API.Port)
	}
	switch c.Source.Kind {
	case SourceSample, SourceSQLite:
	default:
		return fmt.Errorf("unknown source.kind %q", c.Source.Kind)
	}
	if c.Source.Delay < 0 {
		return fmt.Errorf("source.delay must not be negative")
	}
	switch c.Log.Format {
	case "", "json", "text", "console":
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	return nil
}

// DBPath returns the full path to the SQLite database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "baguette.db")
}
