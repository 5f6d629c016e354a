// Package logging builds the zap logger used by the command line tools and
// names the subsystems that log through it.
package logging

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, configuration loading
	CategoryDataset Category = "dataset" // Scene loading and batch runs
	CategoryEncode  Category = "encode"  // Scene serialization
	CategoryPrompt  Category = "prompt"  // Prompt template rendering
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options mirrors config.Logging so this package does not import config.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json or console
	File   string // extra output path; stderr is always written
	// Verbose forces debug level.
	Verbose bool
}

// New builds a production zap logger from opts.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.Set(strings.ToLower(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	switch opts.Format {
	case "", FormatJSON:
	case FormatConsole:
		cfg.Encoding = FormatConsole
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q (want %s or %s)", opts.Format, FormatJSON, FormatConsole)
	}

	if opts.File != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, opts.File)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Get returns the named child logger for a category. A nil logger yields a
// no-op logger.
func Get(logger *zap.Logger, category Category) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named(string(category))
}

// Timer tracks the duration of an operation
type Timer struct {
	logger *zap.Logger
	op     string
	start  time.Time
}

// StartTimer begins timing an operation
func StartTimer(logger *zap.Logger, operation string) *Timer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Timer{logger: logger, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration at debug level
func (t *Timer) Stop(fields ...zap.Field) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Debug(t.op+" completed", append(fields, zap.Duration("elapsed", elapsed))...)
	return elapsed
}

// StopWithInfo ends the timer and logs at info level
func (t *Timer) StopWithInfo(fields ...zap.Field) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Info(t.op+" completed", append(fields, zap.Duration("elapsed", elapsed))...)
	return elapsed
}
