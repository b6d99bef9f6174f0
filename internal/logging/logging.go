// Package logging sets up the zerolog logger used by the CLI. The
// patch-engine and operations packages never import this — they accept a
// logger (via runctx.Context) or log nothing at all.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a console-writer logger at the given level name ("debug",
// "info", "warn", "error"; empty defaults to "info").
func New(level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl := zerolog.InfoLevel
	if l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && l != zerolog.NoLevel {
		lvl = l
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
