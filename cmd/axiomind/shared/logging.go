package shared

import (
	"os"

	"github.com/rs/zerolog"
)

// SetupLogger configures zerolog with pretty console output, the
// default for interactive subcommands.
func SetupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
