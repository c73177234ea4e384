package steg

import (
	"github.com/spacemeshos/steg/shared"
)

type option struct {
	logger shared.Logger
}

func applyOpts(options ...OptionFunc) *option {
	opts := &option{
		logger: shared.DisabledLogger{},
	}
	for _, opt := range options {
		opt(opts)
	}
	return opts
}

type OptionFunc func(*option)

// WithLogger sets the logger used to report embedding statistics.
func WithLogger(logger shared.Logger) OptionFunc {
	return func(o *option) {
		o.logger = logger
	}
}
