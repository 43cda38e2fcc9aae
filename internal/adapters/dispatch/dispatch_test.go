package dispatch_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/bva/billabot/internal/adapters/dispatch"
	"github.com/bva/billabot/internal/domain/model"
	"github.com/bva/billabot/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

type fakeMessenger struct {
	mu      sync.Mutex
	sent    map[string]string // userID -> text
	failFor map[string]error
}

func (f *fakeMessenger) SendDM(ctx context.Context, userID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[userID]; ok {
		return err
	}
	if f.sent == nil {
		f.sent = make(map[string]string)
	}
	f.sent[userID] = text
	return nil
}

func byStatus(deliveries []model.Delivery, status model.DeliveryStatus) []model.Delivery {
	var out []model.Delivery
	for _, d := range deliveries {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out
}

func TestNotify(t *testing.T) {
	Convey("Given a dispatch pool", t, func() {
		ctx := context.Background()
		roster := []model.Person{
			{Name: "Al Jones", ID: "U1"},
			{Name: "Jane Doe", ID: "U2"},
		}

		Convey("When every offender is in the directory", func() {
			messenger := &fakeMessenger{}
			pool := dispatch.NewPool(messenger, dispatch.WithSenderCount(2))
			offenders := []model.Offender{
				{Name: "Al Jones", BillableHours: 8},
				{Name: "Jane Doe", BillableHours: 12.5},
			}
			deliveries := pool.Notify(ctx, offenders, roster, 24)

			Convey("Then each one receives a reminder with their hours and the target", func() {
				So(deliveries, ShouldHaveLength, 2)
				So(byStatus(deliveries, model.DeliverySent), ShouldHaveLength, 2)
				So(messenger.sent["U1"], ShouldContainSubstring, "8.00")
				So(messenger.sent["U1"], ShouldContainSubstring, "24.00")
				So(messenger.sent["U2"], ShouldContainSubstring, "12.50")
			})

			Convey("Then every delivery has a unique id", func() {
				So(deliveries[0].ID, ShouldNotBeEmpty)
				So(deliveries[1].ID, ShouldNotBeEmpty)
				So(deliveries[0].ID, ShouldNotEqual, deliveries[1].ID)
			})
		})

		Convey("When an offender is missing from the directory", func() {
			messenger := &fakeMessenger{}
			pool := dispatch.NewPool(messenger)
			offenders := []model.Offender{
				{Name: "Ghost", BillableHours: 2},
				{Name: "Al Jones", BillableHours: 8},
			}
			deliveries := pool.Notify(ctx, offenders, roster, 24)

			Convey("Then the miss is an outcome, not an error, and others still deliver", func() {
				So(deliveries, ShouldHaveLength, 2)
				misses := byStatus(deliveries, model.DeliveryJoinMiss)
				So(misses, ShouldHaveLength, 1)
				So(misses[0].Name, ShouldEqual, "Ghost")
				So(misses[0].Err, ShouldBeNil)
				So(messenger.sent["U1"], ShouldNotBeEmpty)
			})
		})

		Convey("When one send fails", func() {
			messenger := &fakeMessenger{failFor: map[string]error{"U1": errors.New("rate_limited")}}
			pool := dispatch.NewPool(messenger)
			offenders := []model.Offender{
				{Name: "Al Jones", BillableHours: 8},
				{Name: "Jane Doe", BillableHours: 12.5},
			}
			deliveries := pool.Notify(ctx, offenders, roster, 24)

			Convey("Then the failure is captured and the other delivery lands", func() {
				failed := byStatus(deliveries, model.DeliveryFailed)
				So(failed, ShouldHaveLength, 1)
				So(failed[0].Name, ShouldEqual, "Al Jones")
				So(failed[0].Err, ShouldNotBeNil)
				So(byStatus(deliveries, model.DeliverySent), ShouldHaveLength, 1)
			})
		})

		Convey("When the same name appears twice in a batch", func() {
			messenger := &fakeMessenger{}
			pool := dispatch.NewPool(messenger)
			offenders := []model.Offender{
				{Name: "Al Jones", BillableHours: 8},
				{Name: "Al Jones", BillableHours: 8},
			}
			deliveries := pool.Notify(ctx, offenders, roster, 24)

			Convey("Then only one reminder goes out", func() {
				So(deliveries, ShouldHaveLength, 1)
				So(strings.Count(messenger.sent["U1"], "byeeeeeeeeeeeeee"), ShouldEqual, 1)
			})
		})

		Convey("When the batch is empty", func() {
			pool := dispatch.NewPool(&fakeMessenger{})
			deliveries := pool.Notify(ctx, nil, roster, 24)

			Convey("Then no deliveries are attempted", func() {
				So(deliveries, ShouldBeEmpty)
			})
		})
	})
}
