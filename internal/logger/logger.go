package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
			With().
			Timestamp().
			Logger().
			Level(zerolog.DebugLevel)
	}

	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", "sitetrack").
		Logger().
		Level(zerolog.InfoLevel)
}
