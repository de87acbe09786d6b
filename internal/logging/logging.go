// Package logging configures the process-wide zerolog logger for skyctl.
//
// The CLI logs to stderr so that command output on stdout stays parseable
// and pager-safe. Verbosity is controlled by the --debug flag and the
// SKYLIFT_LOG_LEVEL environment variable.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogLevel overrides the log level when set (trace, debug, info, warn, error).
const EnvLogLevel = "SKYLIFT_LOG_LEVEL"

// Setup configures the global logger. When debug is true the level is forced
// to debug regardless of the environment override.
func Setup(debug bool, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.WarnLevel
	if env := os.Getenv(EnvLogLevel); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
	}
	log.Logger = zerolog.New(console).With().Timestamp().Logger()
}

// ComponentLogger returns a logger tagged with the given component name.
func ComponentLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
