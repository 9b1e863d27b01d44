// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. Development environments and verbose runs
// get human-readable console output at debug level; everything else logs JSON at
// info level.
func Setup(env string, verbose bool) {
	SetupWithWriter(os.Stderr, env, verbose)
}

// SetupWithWriter is Setup with an explicit destination.
func SetupWithWriter(w io.Writer, env string, verbose bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if env == "development" || verbose {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
		return
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
