// Package model contains domain records passed between layers.
package model

// Person is a normalized directory entry. Name carries the display
// name with emoji glyphs stripped; ID is the opaque platform
// identifier used to open a direct-message channel.
type Person struct {
	Name string
	ID   string
}

// Total is one employee's tracked hours for the current ISO week,
// as reported by the time tracking service.
type Total struct {
	Name          string  `json:"name"`
	BillableHours float64 `json:"billableHours"`
	TotalHours    float64 `json:"totalHours"`
}

// Offender is a Total whose billable hours were strictly below the
// target at evaluation time.
type Offender Total

// DeliveryStatus classifies the outcome of one reminder send.
type DeliveryStatus string

// Delivery outcomes. A join miss means the offender's name had no
// matching directory entry; it is a normal outcome, not an error.
const (
	DeliverySent     DeliveryStatus = "sent"
	DeliveryJoinMiss DeliveryStatus = "join_miss"
	DeliveryFailed   DeliveryStatus = "failed"
)

// Delivery records the outcome of one reminder attempt.
type Delivery struct {
	ID     string // unique per attempt
	Name   string
	UserID string // empty on a join miss
	Status DeliveryStatus
	Err    error
}
