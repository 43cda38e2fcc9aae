// Package stubtracker serves a fake time tracking API for local
// development, so the reminder service can be exercised without
// access to the real upstream.
package stubtracker

// Config holds configuration for the stub tracker server.
type Config struct {
	Addr     string // HTTP listen address
	TeamSize int    // Number of people per generated report
	Verbose  bool   // Enable verbose logging
}

// reportResponse mirrors the upstream report payload.
type reportResponse struct {
	Totals []personTotal `json:"totals"`
}

// personTotal is one person's weekly totals in the report payload.
type personTotal struct {
	Name          string  `json:"name"`
	BillableHours float64 `json:"billableHours"`
	TotalHours    float64 `json:"totalHours"`
}
