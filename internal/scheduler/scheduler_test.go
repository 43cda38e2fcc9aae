package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/bva/billabot/internal/domain/model"
	"github.com/bva/billabot/internal/scheduler"
	"github.com/bva/billabot/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

type fakeRunner struct {
	calls int
}

func (f *fakeRunner) WeeklyReminders(ctx context.Context, department string) ([]model.Delivery, error) {
	f.calls++
	return nil, nil
}

func TestScheduler(t *testing.T) {
	Convey("Given a reminder scheduler", t, func() {
		ctx := context.Background()

		Convey("When the schedule is valid", func() {
			s := scheduler.New(&fakeRunner{}, "0 9 * * 5", "Development",
				scheduler.WithLocation(time.UTC),
			)

			Convey("Then it starts and stops cleanly", func() {
				So(s.Start(ctx), ShouldBeNil)
				s.Stop()
			})
		})

		Convey("When the schedule is malformed", func() {
			s := scheduler.New(&fakeRunner{}, "every friday-ish", "Development")

			Convey("Then starting fails", func() {
				So(s.Start(ctx), ShouldNotBeNil)
			})
		})
	})
}
