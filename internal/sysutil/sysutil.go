// Package sysutil configures process-wide state shared by every command.
package sysutil

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogOptions describes the global logger.
type LogOptions struct {
	Level   string // zerolog level name; "warning" is accepted for warn
	Pretty  bool   // console output instead of JSON lines
	Service string
	Version string
}

// ParseLevel maps a level name to a zerolog level. Blank or unknown names
// fall back to info.
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// SetupLogger replaces the global zerolog logger with one writing to w and
// sets the global level. Service and version are stamped on every line when
// set.
func SetupLogger(w io.Writer, opts LogOptions) {
	zerolog.SetGlobalLevel(ParseLevel(opts.Level))
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	ctx := zerolog.New(w).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	if opts.Version != "" {
		ctx = ctx.Str("version", opts.Version)
	}
	log.Logger = ctx.Logger()
}
