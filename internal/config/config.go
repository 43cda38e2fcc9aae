// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Timezone names the organization's local time zone; target hours
	// and the reminder schedule are evaluated in it.
	Timezone string `koanf:"timezone"`

	// SlackToken authenticates the platform API calls.
	SlackToken string `koanf:"slack_token"`

	// TimeTrackingURL is the base URL of the time tracking service.
	TimeTrackingURL string `koanf:"timetracking_url"`

	// FetchTimeoutMS bounds each upstream request.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// FetchMaxRetries bounds the time tracking retry loop.
	FetchMaxRetries int `koanf:"fetch_max_retries"`

	// SenderCount sets the number of concurrent reminder senders.
	SenderCount int `koanf:"sender_count"`

	// Departments lists the recognized department filter values.
	Departments []string `koanf:"departments"`

	// ReportWhitelist lists the user IDs allowed to request
	// department-wide reports.
	ReportWhitelist []string `koanf:"report_whitelist"`

	// ReminderSchedule is a cron expression for the weekly run.
	ReminderSchedule string `koanf:"reminder_schedule"`

	// ReminderDepartment scopes the scheduled reminder run.
	ReminderDepartment string `koanf:"reminder_department"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use
// and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8080",
		Timezone:        "Local",
		TimeTrackingURL: "http://time-is-a-flat-circle.herokuapp.com",
		FetchTimeoutMS:  5_000,
		FetchMaxRetries: 3,
		SenderCount:     4,
		Departments: []string{
			"Development",
			"Design",
			"Paid Media",
			"Affiliate",
			"PMO",
			"Account Strategy",
			"CRO",
			"Sales",
			"All",
		},
		ReportWhitelist:    nil,
		ReminderSchedule:   "0 9 * * 5", // Friday morning
		ReminderDepartment: "Development",
	}
}
