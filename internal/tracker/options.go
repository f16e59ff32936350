package tracker

import (
	"io"
	"log/slog"
)

// DefaultReservedName is the built-in substring every tracker matches
// against object names unless overridden.
const DefaultReservedName = "mainPlayer"

// Option configures a Tracker.
type Option func(*options)

type options struct {
	rootType     TypeID
	reservedName string
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		reservedName: DefaultReservedName,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithRootType sets the built-in always-tracked base type. Every object
// whose type is, or derives from, t is tracked. Zero disables the rule.
func WithRootType(t TypeID) Option {
	return func(o *options) {
		o.rootType = t
	}
}

// WithReservedName sets the built-in always-tracked name substring.
// An empty value disables the rule.
func WithReservedName(s string) Option {
	return func(o *options) {
		o.reservedName = s
	}
}

// WithLogger routes diagnostics to l. By default they are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
