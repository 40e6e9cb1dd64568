// Package runner provides move sources and sinks for a bridge: a
// line-oriented local runner and a websocket server.
package runner

import (
	"io"

	"github.com/charmbracelet/log"
)

type options struct {
	logger    *log.Logger
	startFEN  string
	accessLog io.Writer
}

// Option configures a runner.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStartFEN starts games from fen instead of the initial position.
func WithStartFEN(fen string) Option {
	return func(o *options) {
		o.startFEN = fen
	}
}

// WithAccessLog sets where the server writes its HTTP access log.
func WithAccessLog(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.accessLog = w
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:    log.New(io.Discard),
		accessLog: io.Discard,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
