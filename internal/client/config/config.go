// Package config holds the terminal client's settings: defaults, an
// optional JSON file (-c/-config) and command-line flags, applied in that
// order.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the terminal client.
//
// Fields:
//   - ServerURL: base URL of the REST API including the /api prefix.
//   - SessionDB: path of the SQLite file that keeps the login session.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerURL      string
	SessionDB      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000/api"
	c.SessionDB = "session.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
