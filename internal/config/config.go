package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the server settings, loaded from environment variables with an
// optional .env file. Command-line flags override these values.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string

	// JWTSecret signs session tokens. Blank means a random secret is
	// generated at startup, which invalidates sessions on restart.
	JWTSecret string

	// SeedPassword is the password given to the seeded demo accounts.
	// Blank means a random password is generated and printed at startup.
	SeedPassword string

	// LogPath is an optional file that receives a copy of all log output.
	LogPath string
}

// Load reads a .env file if present and then the environment. A missing .env
// file is not an error; variables may come from the environment directly.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Addr:         withDefault(os.Getenv("BIBLIOTECA_ADDR"), ":8080"),
		JWTSecret:    strings.TrimSpace(os.Getenv("BIBLIOTECA_JWT_SECRET")),
		SeedPassword: strings.TrimSpace(os.Getenv("BIBLIOTECA_SEED_PASSWORD")),
		LogPath:      strings.TrimSpace(os.Getenv("BIBLIOTECA_LOG")),
	}
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
