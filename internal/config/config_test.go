package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BAGUETTE_DATA_DIR", "BAGUETTE_BIND", "BAGUETTE_PORT", "BAGUETTE_SOURCE",
		"BAGUETTE_FETCH_DELAY", "BAGUETTE_FETCH_FAIL", "BAGUETTE_WALLET_KEY", "BAGUETTE_WALLET_ADDRESS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Port != 8404 || cfg.API.Bind != "127.0.0.1" {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.Source.Kind != SourceSample || cfg.Source.Delay != time.Second {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Voting.PoolAmount != "156.8 MATIC" {
		t.Errorf("pool amount = %q", cfg.Voting.PoolAmount)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "baguette.yaml")
	yml := `
data_dir: /tmp/baguette-test
api:
  port: 9000
source:
  kind: sqlite
  delay: 250ms
  seed: true
wallet:
  address: 1LoVGDgRs9hTfTNJNuXKSpywcbdvwRXpmK
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("port = %d", cfg.API.Port)
	}
	if cfg.API.Bind != "127.0.0.1" {
		t.Errorf("bind default lost: %q", cfg.API.Bind)
	}
	if cfg.Source.Kind != SourceSQLite || cfg.Source.Delay != 250*time.Millisecond || !cfg.Source.Seed {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Wallet.Address == "" {
		t.Error("wallet address not parsed")
	}
	if got := cfg.DBPath(); got != "/tmp/baguette-test/baguette.db" {
		t.Errorf("DBPath = %s", got)
	}
}

func TestLoad_EnvOverlay(t *testing.T) {
	clearEnv(t)
	t.Setenv("BAGUETTE_PORT", "9100")
	t.Setenv("BAGUETTE_FETCH_DELAY", "0s")
	t.Setenv("BAGUETTE_FETCH_FAIL", "true")
	t.Setenv("BAGUETTE_WALLET_KEY", "KwdMAjGmerYanjeui5SHS7JkmpZvVipYvB2LJGU1ZxJwYvP98617")

	cfg, err := LoadFromBytes([]byte("api:\n  port: 9000\n"))
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	if cfg.API.Port != 9100 {
		t.Errorf("port = %d, want env override 9100", cfg.API.Port)
	}
	if cfg.Source.Delay != 0 || !cfg.Source.Fail {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Wallet.Key == "" {
		t.Error("wallet key not overlaid")
	}
}

func TestLoad_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BAGUETTE_PORT", "eighty")
	if _, err := LoadFromBytes(nil); err == nil {
		t.Error("expected error for bad BAGUETTE_PORT")
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cases := map[string]string{
		"port":   "api:\n  port: 0\n",
		"kind":   "source:\n  kind: redis\n",
		"delay":  "source:\n  delay: -1s\n",
		"format": "log:\n  format: xml\n",
	}
	for name, yml := range cases {
		if _, err := LoadFromBytes([]byte(yml)); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoad_TildeDataDir(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFromBytes([]byte("data_dir: ~/bag\n"))
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	home, _ := os.UserHomeDir()
	if cfg.DataDir != filepath.Join(home, "bag") {
		t.Errorf("DataDir = %s", cfg.DataDir)
	}
}
