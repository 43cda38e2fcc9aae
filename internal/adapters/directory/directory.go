// Package directory resolves the chat platform roster into normalized
// name/id records used as the join side of the reminder pipeline.
package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/forPelevin/gomoji"
	"github.com/slack-go/slack"

	"github.com/bva/billabot/internal/domain/model"
	"github.com/bva/billabot/pkg/logger"
	"github.com/bva/billabot/pkg/metrics"
)

const upstreamName = "directory"

// Fetcher retrieves the normalized roster.
type Fetcher interface {
	Roster(ctx context.Context) ([]model.Person, error)
}

// API is the slice of the platform client the fetcher needs.
type API interface {
	GetUsersContext(ctx context.Context, options ...slack.GetUsersOption) ([]slack.User, error)
}

// Slack implements Fetcher against the Slack users API.
type Slack struct {
	api    API
	logger logger.Logger
}

// NewSlack creates a roster fetcher backed by api.
func NewSlack(api API, opts ...Option) *Slack {
	s := &Slack{
		api:    api,
		logger: logger.Get().Named(upstreamName),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Roster fetches the member list and maps it to Person records.
// Deleted, restricted, and bot members are dropped; display names have
// emoji glyphs stripped so they can join against time tracking names.
// Duplicate names are possible and pass through unresolved.
func (s *Slack) Roster(ctx context.Context) ([]model.Person, error) {
	start := time.Now()
	defer func() {
		metrics.RecordUpstreamLatency(upstreamName, float64(time.Since(start).Milliseconds()))
	}()

	users, err := s.api.GetUsersContext(ctx)
	if err != nil {
		metrics.RecordUpstreamError(upstreamName, "network")
		s.logger.Error(ctx, "roster fetch failed", logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	people := make([]model.Person, 0, len(users))
	for _, u := range users {
		if u.Deleted || u.IsRestricted || u.IsBot {
			continue
		}
		people = append(people, model.Person{
			Name: gomoji.RemoveEmojis(u.RealName),
			ID:   u.ID,
		})
	}

	s.logger.Debug(ctx, "fetched roster",
		logger.Int("members", len(users)),
		logger.Int("people", len(people)),
	)
	return people, nil
}
