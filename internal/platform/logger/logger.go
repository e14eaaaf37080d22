package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New crea el logger base del servicio sobre zerolog.
// format "text" usa ConsoleWriter (dev); "json" escribe NDJSON a stdout.
func New(level, format, app string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	ctx := baseWriter(format).Level(lvl).With().Timestamp()
	if strings.TrimSpace(app) != "" {
		ctx = ctx.Str("app", strings.TrimSpace(app))
	}
	return ctx.Logger()
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME (opcional)
func NewFromEnv() zerolog.Logger {
	return New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Getenv("APP_NAME"))
}

func baseWriter(format string) zerolog.Logger {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return zerolog.New(os.Stdout)
	default:
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
}
