package config

import (
	"github.com/joho/godotenv"
)

// LoadEnv reads .env when present. A missing file is fine; the process
// environment is used as-is.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		Logger.Warn("No .env file loaded, relying on process environment:", err)
	}
}
