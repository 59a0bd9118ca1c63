// Package observability provides structured logging for the extraction engine.
package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger wraps zerolog with extraction-specific context helpers.
type Logger struct {
	zl zerolog.Logger
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Format string // json or console
	Output io.Writer
}

// NewLogger creates a new Logger with the given configuration.
func NewLogger(cfg LogConfig) *Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level := parseLevel(cfg.Level)

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	var zl zerolog.Logger
	if cfg.Format == "json" {
		zl = zerolog.New(output)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		})
	}

	zl = zl.With().
		Timestamp().
		Str("service", "adt-press").
		Logger().
		Level(level)

	return &Logger{zl: zl}
}

// DefaultLogger returns a console logger at info level.
func DefaultLogger() *Logger {
	return NewLogger(LogConfig{Level: "info", Format: "console"})
}

// Nop returns a logger that discards everything. Used by tests and --quiet.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug starts a debug-level event.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }

// Info starts an info-level event.
func (l *Logger) Info() *zerolog.Event { return l.zl.Info() }

// Warn starts a warning-level event.
func (l *Logger) Warn() *zerolog.Event { return l.zl.Warn() }

// Error starts an error-level event.
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// WithUnit returns a logger carrying the current processing unit id.
func (l *Logger) WithUnit(unitID string) *Logger {
	return &Logger{zl: l.zl.With().Str("unit", unitID).Logger()}
}

// WithPage returns a logger carrying the current 1-based page number.
func (l *Logger) WithPage(page int) *Logger {
	return &Logger{zl: l.zl.With().Int("page", page).Logger()}
}
