package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the API reads from the environment.
type Config struct {
	DatabaseURL    string
	JWTSecret      string
	Port           string
	AllowedOrigins []string
}

// Load reads an optional .env file and builds the config. JWT_SECRET is the
// only hard requirement; with no DATABASE_URL the API falls back to the
// in-memory store.
func Load() Config {
	_ = godotenv.Load() // ok if missing in prod

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("missing required env JWT_SECRET")
	}

	return Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Port:           getenv("PORT", "8080"),
		AllowedOrigins: splitOrigins(getenv("CORS_ORIGINS", "http://localhost:5173")),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
