package config

import (
	"fmt"

	"dsgprompt/internal/logging"
)

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`   // optional extra output
}

// Options converts the section for logging.New.
func (c LoggingConfig) Options(verbose bool) logging.Options {
	return logging.Options{
		Level:   c.Level,
		Format:  c.Format,
		File:    c.File,
		Verbose: verbose,
	}
}

var validLevels = []string{"debug", "info", "warn", "error"}

func (c LoggingConfig) validate() error {
	if c.Level != "" && !contains(validLevels, c.Level) {
		return fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Level, validLevels)
	}
	switch c.Format {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("invalid logging.format: %s (valid: [%s %s])", c.Format, logging.FormatJSON, logging.FormatConsole)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
