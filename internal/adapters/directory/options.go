package directory

import (
	"github.com/bva/billabot/pkg/logger"
)

// Option applies a configuration option to the Slack fetcher.
type Option func(*Slack)

// WithLogger sets a custom logger for the fetcher.
func WithLogger(log logger.Logger) Option {
	return func(s *Slack) {
		if log != nil {
			s.logger = log
		}
	}
}
