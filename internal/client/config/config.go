// Package config loads runtime configuration for the NutriTrack CLI.
//
// Sources & precedence: built-in defaults, then environment variables
// (optionally seeded from a .env file), then an optional JSON file selected
// via -c/-config, then command-line flags. Later sources win.
package config

import "time"

// Config holds runtime settings for the NutriTrack CLI.
//
// Fields:
//   - ServerAddr: base URL of the account store HTTP API.
//   - DatabaseDSN: path of the local SQLite database file.
//   - GeminiAPIKey: credential for the meal analysis backend. Empty means
//     analysis is not configured; the rest of the client still works.
//   - GeminiModel: model identifier sent to the analysis backend.
//   - RequestTimeout: per-request deadline for outbound HTTP calls.
type Config struct {
	ServerAddr     string
	DatabaseDSN    string
	GeminiAPIKey   string
	GeminiModel    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://127.0.0.1:8080"
	c.DatabaseDSN = "nutritrack.db"
	c.GeminiModel = "gemini-2.0-flash"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
