package report

import "errors"

// Sentinel kinds for report errors.
var (
	// ErrNoTotals marks a render with zero records. Callers should
	// treat it as "no data this week" rather than a failure.
	ErrNoTotals = errors.New("no totals to report")
)
