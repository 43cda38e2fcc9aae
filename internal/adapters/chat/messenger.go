// Package chat sends direct messages through the chat platform.
package chat

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/bva/billabot/pkg/logger"
)

// Messenger delivers a private message to one recipient.
type Messenger interface {
	SendDM(ctx context.Context, userID, text string) error
}

// API is the slice of the platform client the messenger needs.
type API interface {
	OpenConversationContext(ctx context.Context, params *slack.OpenConversationParameters) (*slack.Channel, bool, bool, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Slack implements Messenger against the Slack conversations API.
type Slack struct {
	api    API
	logger logger.Logger
}

// NewSlack creates a messenger backed by api.
func NewSlack(api API, opts ...Option) *Slack {
	s := &Slack{
		api:    api,
		logger: logger.Get().Named("chat"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SendDM opens (or reuses) the IM channel with userID and posts text.
func (s *Slack) SendDM(ctx context.Context, userID, text string) error {
	channel, _, _, err := s.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users:    []string{userID},
		ReturnIM: true,
	})
	if err != nil {
		return fmt.Errorf("%w: open conversation: %w", ErrNetwork, err)
	}

	if _, _, err := s.api.PostMessageContext(ctx, channel.ID, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("%w: post message: %w", ErrNetwork, err)
	}

	s.logger.Debug(ctx, "sent direct message", logger.String("user", userID))
	return nil
}
