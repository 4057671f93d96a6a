package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how New builds a logger.
type Options struct {
	// Out receives human readable console output, normally os.Stderr
	Out io.Writer

	// Verbosity maps -v counts to levels: 0 warn, 1 info, 2 debug, 3+ trace
	Verbosity int

	// NoColor disables ANSI colours in console output
	NoColor bool

	// File, when set, receives JSON log lines in append mode
	File string
}

// New builds a logger from opts. Nothing global is touched: the returned
// logger is handed to every component that needs one.
// An error is only returned when the log file cannot be opened.
func New(opts Options) (zerolog.Logger, error) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    opts.NoColor,
		},
	}

	if opts.File != "" {
		fileHandle, err := setupLogFile(opts.File)
		if err != nil {
			return zerolog.Nop(), err
		}
		writers = append(writers, fileHandle)
	}

	logger := zerolog.New(io.MultiWriter(writers...)).
		Level(LevelFor(opts.Verbosity)).
		With().Timestamp().Logger()

	// Add caller information for debug and trace levels
	if opts.Verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}

	logger.Debug().Int("verbosity", opts.Verbosity).Str("logFile", opts.File).Msg("Logger initialized")

	return logger, nil
}

// LevelFor returns the zerolog level for a verbosity count
func LevelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Component returns a contextualized logger with the given name
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
