package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables. A .env
// file in the working directory is loaded first when present; real
// environment variables are not overwritten by it.
//
// Recognized variables:
//
//	SERVER_ADDR     base URL of the account store HTTP API
//	DATABASE_DSN    path of the local SQLite database file
//	GEMINI_API_KEY  analysis backend credential
//	GEMINI_MODEL    analysis model identifier
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.ServerAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
}
