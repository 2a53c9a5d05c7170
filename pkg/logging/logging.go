// +build !logless

// Package logging provides the simulator's process-wide logger,
// following the teacher's pkg/logger build-tag split: a real zerolog
// logger by default, swapped for a zero-cost no-op under the logless
// build tag (logging.empty.go) for benchmark or embedded builds that
// can't afford even a disabled log call's overhead.
package logging

import (
	"os"

	"github.com/rs/zerolog"
	logger "github.com/rs/zerolog/log"
)

// Log is the process-wide logger.
var Log = logger.With().Caller().Logger().Output(zerolog.ConsoleWriter{Out: os.Stderr})

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}
