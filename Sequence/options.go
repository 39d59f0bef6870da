package Sequence

import (
	"github.com/rs/zerolog"
)

type config struct {
	hint int
	log  zerolog.Logger
}

// Option configures a Sequence.
type Option func(*config)

// WithHint pre-sizes for n markers.
func WithHint(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.hint = n
		}
	}
}

// WithLogger sets the logger, also handed to the underlying tree. Edits are logged at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}
