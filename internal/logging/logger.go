// Package logging configures the zerolog loggers used by os-find.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Verbosity levels accepted by [New], from quietest to loudest.
const (
	ErrorVerbose = 1
	WarnVerbose  = 2
	InfoVerbose  = 3
	DebugVerbose = 4
	TraceVerbose = 5
)

// Level maps a verbosity in [1, 5] to a zerolog level. Values outside the
// range are clamped.
func Level(verbose int) zerolog.Level {
	levels := [5]zerolog.Level{
		zerolog.ErrorLevel,
		zerolog.WarnLevel,
		zerolog.InfoLevel,
		zerolog.DebugLevel,
		zerolog.TraceLevel,
	}

	verbose = min(max(verbose, ErrorVerbose), TraceVerbose)

	return levels[verbose-1]
}

// New returns a console logger writing to w at the given verbosity.
// Debug and trace verbosity also record the caller.
func New(w io.Writer, verbose int) zerolog.Logger {
	lvl := Level(verbose)

	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}

	ctx := zerolog.New(output).Level(lvl).With().Timestamp()
	if lvl <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}

	return ctx.Logger()
}

// Component returns a child logger tagged with the component name.
func Component(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}
