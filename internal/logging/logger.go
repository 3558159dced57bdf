// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName is stamped on every line written by the global logger.
const ServiceName = "marquee"

// Config holds logging configuration.
type Config struct {
	// Level: trace, debug, info, warn, error, fatal, panic, disabled. Default info.
	Level string

	// Format: json or console. Default json.
	Format string

	// Caller adds file:line to each line.
	Caller bool

	// Environment is added as a field when set (development, production).
	Environment string

	// Output defaults to os.Stderr.
	Output io.Writer
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

//nolint:gochecknoinits // logging must work before Init is called
func init() {
	log = build(Config{})
}

// Init configures the global logger. Safe to call more than once.
//
//nolint:gocritic // hugeParam: cfg passed by value for immutability
func Init(cfg Config) {
	l := build(cfg)
	mu.Lock()
	log = l
	mu.Unlock()
}

//nolint:gocritic // hugeParam: cfg passed by value for immutability
func build(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"

	c := zerolog.New(out).With().Timestamp().Str("service", ServiceName)
	if cfg.Environment != "" {
		c = c.Str("environment", cfg.Environment)
	}
	if cfg.Caller {
		c = c.Caller()
	}
	return c.Logger()
}

// parseLevel maps a level name to zerolog. Unknown names mean info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns a copy of the global logger. Components that take a
// zerolog.Logger by value (recommend.Build, the supervisor services) get it
// from here or from WithComponent.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger replaces the global logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// WithComponent returns a child of the global logger tagged component=name.
//
//	logger := logging.WithComponent("database")
func WithComponent(name string) zerolog.Logger {
	l := Logger()
	return l.With().Str("component", name).Logger()
}

// Debug starts a debug message on the global logger.
func Debug() *zerolog.Event { l := Logger(); return l.Debug() }

// Info starts an info message on the global logger.
func Info() *zerolog.Event { l := Logger(); return l.Info() }

// Warn starts a warning message on the global logger.
func Warn() *zerolog.Event { l := Logger(); return l.Warn() }

// Error starts an error message on the global logger.
func Error() *zerolog.Event { l := Logger(); return l.Error() }

// Fatal starts a fatal message; os.Exit(1) follows the write.
//
//	logging.Fatal().Err(err).Msg("Marquee failed")
func Fatal() *zerolog.Event { l := Logger(); return l.Fatal() }

// GetLevel returns the current global level.
func GetLevel() zerolog.Level {
	return zerolog.GlobalLevel()
}

// NewTestLogger creates a JSON logger writing to w with no global fields.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
