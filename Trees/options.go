package Trees

import (
	"github.com/rs/zerolog"
)

type config struct {
	hint int
	log  zerolog.Logger
}

// Option configures a Tree.
type Option func(*config)

// WithHint pre-sizes the arena for n nodes.
func WithHint(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.hint = n
		}
	}
}

// WithLogger sets the logger. Root changes and merges after shifts are logged at debug level, invariant
// errors at warn level. The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}
