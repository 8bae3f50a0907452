// Package config resolves where snip keeps its database and log file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultDBPath   = "snippets.db"
	DefaultLogFile  = "snippets.log"
	DefaultLogLevel = "debug"

	EnvDBPath   = "SNIP_DB"
	EnvLogFile  = "SNIP_LOG_FILE"
	EnvLogLevel = "SNIP_LOG_LEVEL"
)

// ErrInvalidLogLevel is returned when a log level name is not recognized.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Config is the fully resolved configuration for one snip invocation.
type Config struct {
	DBPath   string
	LogFile  string
	LogLevel slog.Level
}

// Overrides holds values given on the command line. Empty fields are unset.
type Overrides struct {
	DBPath  string
	LogFile string
}

// Resolve builds a Config from, in order of precedence, command-line
// overrides, the environment (including a .env file in the working
// directory), the global config file, and built-in defaults.
func Resolve(flags Overrides, globalPath string) (*Config, error) {
	// Existing environment variables win over .env entries.
	_ = godotenv.Load()

	global, err := LoadGlobalConfig(globalPath)
	if err != nil {
		return nil, err
	}

	levelName := firstNonEmpty(os.Getenv(EnvLogLevel), global.LogLevel, DefaultLogLevel)
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	return &Config{
		DBPath:   ExpandTilde(firstNonEmpty(flags.DBPath, os.Getenv(EnvDBPath), global.DBPath, DefaultDBPath)),
		LogFile:  ExpandTilde(firstNonEmpty(flags.LogFile, os.Getenv(EnvLogFile), global.LogFile, DefaultLogFile)),
		LogLevel: level,
	}, nil
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid: debug, info, warn, error)", ErrInvalidLogLevel, name)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
