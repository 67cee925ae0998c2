package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/adrg/xdg"

	"github.com/nekores/compressifypro/internal/common"
)

// Environment variable names
const (
	EnvHistory       = "COMPRESSIFY_HISTORY"
	EnvHistoryDB     = "COMPRESSIFY_HISTORY_DB"
	EnvEncodeWorkers = "COMPRESSIFY_ENCODE_WORKERS"
)

// Config holds application configuration
type Config struct {
	AppDataDir     string
	HistoryPath    string
	HistoryEnabled bool
	EncodeWorkers  int
	EngineTimeout  time.Duration
}

// New creates a new configuration instance, resolving data directories and
// environment overrides once at startup.
func New() *Config {
	cfg := &Config{
		EncodeWorkers: runtime.NumCPU(),
		EngineTimeout: 30 * time.Second,
	}

	cfg.setupDirectories()
	cfg.applyEnvironment()

	return cfg
}

func (c *Config) setupDirectories() {
	c.AppDataDir = filepath.Join(xdg.DataHome, "compressify")
	os.MkdirAll(c.AppDataDir, common.DefaultFilePermissions)

	c.HistoryPath = filepath.Join(c.AppDataDir, "history.sqlite3")
}

func (c *Config) applyEnvironment() {
	c.HistoryEnabled = os.Getenv(EnvHistory) != "off"

	if path := os.Getenv(EnvHistoryDB); path != "" {
		c.HistoryPath = path
	}

	if value := os.Getenv(EnvEncodeWorkers); value != "" {
		if workers, err := strconv.Atoi(value); err == nil && workers > 0 {
			c.EncodeWorkers = workers
		}
	}
}
