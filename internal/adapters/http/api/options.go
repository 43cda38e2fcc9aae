package api

// routeConfig carries the caller-side policy for the command surface.
type routeConfig struct {
	departments map[string]bool
	ordered     []string
	whitelist   map[string]bool
}

// Option applies a configuration option to the route config.
type Option func(*routeConfig)

func newRouteConfig(opts ...Option) *routeConfig {
	cfg := &routeConfig{
		departments: make(map[string]bool),
		whitelist:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithDepartments sets the recognized department filter values.
func WithDepartments(departments []string) Option {
	return func(cfg *routeConfig) {
		for _, d := range departments {
			if !cfg.departments[d] {
				cfg.departments[d] = true
				cfg.ordered = append(cfg.ordered, d)
			}
		}
	}
}

// WithWhitelist sets the user IDs allowed to request department-wide
// reports and to trigger reminder runs.
func WithWhitelist(userIDs []string) Option {
	return func(cfg *routeConfig) {
		for _, id := range userIDs {
			cfg.whitelist[id] = true
		}
	}
}

// allowed reports whether userID may use the gated operations. An
// empty whitelist leaves the surface open.
func (cfg *routeConfig) allowed(userID string) bool {
	if len(cfg.whitelist) == 0 {
		return true
	}
	return cfg.whitelist[userID]
}
