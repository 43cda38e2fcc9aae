package dispatch

import (
	"github.com/bva/billabot/pkg/logger"
)

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithSenderCount sets the number of concurrent senders.
func WithSenderCount(count int) Option {
	return func(p *Pool) {
		if count > 0 {
			p.senders = count
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(log logger.Logger) Option {
	return func(p *Pool) {
		if log != nil {
			p.logger = log
		}
	}
}
