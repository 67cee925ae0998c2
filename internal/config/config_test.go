package config

import (
	"testing"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv(EnvHistory, "")
	t.Setenv(EnvHistoryDB, "")
	t.Setenv(EnvEncodeWorkers, "")

	cfg := New()

	if cfg.AppDataDir == "" {
		t.Error("Expected AppDataDir to be set")
	}
	if cfg.HistoryPath == "" {
		t.Error("Expected HistoryPath to be set")
	}
	if !cfg.HistoryEnabled {
		t.Error("Expected history enabled by default")
	}
	if cfg.EncodeWorkers < 1 {
		t.Errorf("Expected at least one encode worker, got %d", cfg.EncodeWorkers)
	}
	if cfg.EngineTimeout <= 0 {
		t.Errorf("Expected positive engine timeout, got %v", cfg.EngineTimeout)
	}
}

func TestNewEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvHistory, "off")
	t.Setenv(EnvHistoryDB, "/tmp/custom-history.sqlite3")
	t.Setenv(EnvEncodeWorkers, "3")

	cfg := New()

	if cfg.HistoryEnabled {
		t.Error("Expected history disabled when COMPRESSIFY_HISTORY=off")
	}
	if cfg.HistoryPath != "/tmp/custom-history.sqlite3" {
		t.Errorf("Expected history path override, got %s", cfg.HistoryPath)
	}
	if cfg.EncodeWorkers != 3 {
		t.Errorf("Expected 3 encode workers, got %d", cfg.EncodeWorkers)
	}
}

func TestNewIgnoresInvalidWorkerCount(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "many"},
		{"zero", "0"},
		{"negative", "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvEncodeWorkers, tt.value)

			cfg := New()
			if cfg.EncodeWorkers < 1 {
				t.Errorf("Expected invalid %q to fall back to a positive default, got %d", tt.value, cfg.EncodeWorkers)
			}
		})
	}
}
