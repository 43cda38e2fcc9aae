package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/slack-go/slack"

	"github.com/bva/billabot/internal/adapters/chat"
	"github.com/bva/billabot/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

type fakeAPI struct {
	openErr   error
	postErr   error
	opened    []string
	posted    []string
	channelID string
}

func (f *fakeAPI) OpenConversationContext(ctx context.Context, params *slack.OpenConversationParameters) (*slack.Channel, bool, bool, error) {
	if f.openErr != nil {
		return nil, false, false, f.openErr
	}
	f.opened = append(f.opened, params.Users...)
	ch := &slack.Channel{}
	ch.ID = f.channelID
	return ch, false, false, nil
}

func (f *fakeAPI) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	if f.postErr != nil {
		return "", "", f.postErr
	}
	f.posted = append(f.posted, channelID)
	return channelID, "", nil
}

func TestSendDM(t *testing.T) {
	Convey("Given a messenger", t, func() {
		ctx := context.Background()

		Convey("When sending to a reachable recipient", func() {
			api := &fakeAPI{channelID: "D123"}
			err := chat.NewSlack(api).SendDM(ctx, "U1", "hello")

			Convey("Then the IM channel opens and the message posts to it", func() {
				So(err, ShouldBeNil)
				So(api.opened, ShouldResemble, []string{"U1"})
				So(api.posted, ShouldResemble, []string{"D123"})
			})
		})

		Convey("When the channel cannot be opened", func() {
			api := &fakeAPI{openErr: errors.New("user_not_found")}
			err := chat.NewSlack(api).SendDM(ctx, "U1", "hello")

			Convey("Then a network error surfaces and nothing posts", func() {
				So(errors.Is(err, chat.ErrNetwork), ShouldBeTrue)
				So(api.posted, ShouldBeEmpty)
			})
		})

		Convey("When posting fails", func() {
			api := &fakeAPI{channelID: "D123", postErr: errors.New("rate_limited")}
			err := chat.NewSlack(api).SendDM(ctx, "U1", "hello")

			Convey("Then a network error surfaces", func() {
				So(errors.Is(err, chat.ErrNetwork), ShouldBeTrue)
			})
		})
	})
}
