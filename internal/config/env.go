package config

import (
	"os"

	"github.com/joho/godotenv"
)

// envPaths are searched in order; the first readable file wins.
var envPaths = []string{".env", "../.env", "../../.env"}

// LoadEnv loads environment variables from the first .env file found.
// Variables already set in the process environment are left alone.
func LoadEnv() error {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		return godotenv.Load(envPath)
	}
	return nil
}
