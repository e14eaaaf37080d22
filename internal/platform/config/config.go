package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Host string

	// Storage
	DBDSN string // vacío => repos in-memory (dev)

	// JWT
	JWTSecret  string
	JWTExpires time.Duration

	// CORS / cookies
	CORSOrigins   []string
	SecureCookies bool
}

// Load lee .env (si existe) y arma la config desde env vars.
func Load() *Config {
	// .env es opcional: en deploy las vars vienen del entorno.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		Host:          os.Getenv("HOST"),
		DBDSN:         os.Getenv("DB_DSN"),
		JWTSecret:     getenv("JWT_SECRET", "dev-secret"),
		JWTExpires:    parseDuration(os.Getenv("JWT_EXPIRES"), 7*24*time.Hour),
		CORSOrigins:   splitCSV(getenv("CORS_ORIGINS", "*")),
		SecureCookies: strings.EqualFold(os.Getenv("APP_ENV"), "production"),
	}

	return cfg
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
