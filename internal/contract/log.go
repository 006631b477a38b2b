package contract

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide structured logger. It writes human-readable lines to stderr.
var Logger = newConsoleLogger(true)

func newConsoleLogger(useColors bool) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !useColors,
		TimeFormat: time.TimeOnly,
	}).With().Timestamp().Logger()
}

// InitLogger sets the global level and rebuilds Logger.
func InitLogger(level string, useColors bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level '%s': %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	Logger = newConsoleLogger(useColors)
	return nil
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger.WithLevel(zerolog.FatalLevel).Err(err).Msg(msg)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger.Warn().Err(err).Msg(msg)
}
