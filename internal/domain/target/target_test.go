package target_test

import (
	"testing"
	"time"

	"github.com/bva/billabot/internal/domain/target"
	. "github.com/smartystreets/goconvey/convey"
)

// The week of 2025-06-02: Monday the 2nd through Sunday the 8th.
func day(dayOfMonth, hour, minute int) time.Time {
	return time.Date(2025, time.June, dayOfMonth, hour, minute, 0, 0, time.UTC)
}

func TestHours(t *testing.T) {
	Convey("Given the weekly target function", t, func() {
		Convey("When evaluated on a weekend", func() {
			Convey("Then it returns the full week's target", func() {
				So(target.Hours(day(7, 11, 0)), ShouldEqual, 30) // Saturday
				So(target.Hours(day(8, 3, 30)), ShouldEqual, 30) // Sunday
				So(target.Hours(day(8, 23, 59)), ShouldEqual, 30)
			})
		})

		Convey("When evaluated before business hours on a weekday", func() {
			Convey("Then only completed weekdays count", func() {
				So(target.Hours(day(2, 7, 15)), ShouldEqual, 0)  // Monday
				So(target.Hours(day(4, 8, 30)), ShouldEqual, 12) // Wednesday
				So(target.Hours(day(6, 0, 0)), ShouldEqual, 24)  // Friday midnight
				So(target.Hours(day(6, 8, 59)), ShouldEqual, 24)
			})
		})

		Convey("When evaluated after business hours on a weekday", func() {
			Convey("Then the finished day counts in full", func() {
				So(target.Hours(day(2, 18, 1)), ShouldEqual, 6)  // Monday
				So(target.Hours(day(4, 19, 0)), ShouldEqual, 18) // Wednesday
				So(target.Hours(day(6, 23, 0)), ShouldEqual, 30) // Friday
			})
		})

		Convey("When evaluated during business hours", func() {
			Convey("Then the target ramps linearly across the day", func() {
				// Wednesday 13:30 -> 4.5h since open: (2 + 4.5/9)*6 - 3
				So(target.Hours(day(4, 13, 30)), ShouldAlmostEqual, 12.0, 1e-9)
				// Thursday 11:15 -> 2.25h since open: (3 + 2.25/9)*6 - 3
				So(target.Hours(day(5, 11, 15)), ShouldAlmostEqual, 16.5, 1e-9)
			})

			Convey("Then it is monotonically non-decreasing as minutes advance", func() {
				prev := target.Hours(day(3, 9, 0)) // Tuesday
				for minute := 1; minute <= 9*60; minute++ {
					now := day(3, 9, 0).Add(time.Duration(minute) * time.Minute)
					cur := target.Hours(now)
					So(cur, ShouldBeGreaterThanOrEqualTo, prev)
					prev = cur
				}
			})
		})

		Convey("When evaluated at the business-hour boundaries", func() {
			// The ramp carries a fixed -3 offset, so both boundaries sit
			// below their adjacent branch. These pins document the jump
			// rather than assert continuity.
			Convey("Then 09:00 sharp uses the in-day ramp", func() {
				So(target.Hours(day(2, 9, 0)), ShouldAlmostEqual, -3.0, 1e-9)  // Monday
				So(target.Hours(day(4, 9, 0)), ShouldAlmostEqual, 9.0, 1e-9)   // Wednesday
			})
			Convey("Then 18:00 sharp still uses the in-day ramp", func() {
				So(target.Hours(day(4, 18, 0)), ShouldAlmostEqual, 15.0, 1e-9) // Wednesday
			})
		})
	})
}

func TestISOWeekday(t *testing.T) {
	Convey("Given dates across a week", t, func() {
		Convey("Then weekdays number 1 for Monday through 7 for Sunday", func() {
			So(target.ISOWeekday(day(2, 12, 0)), ShouldEqual, 1)
			So(target.ISOWeekday(day(6, 12, 0)), ShouldEqual, 5)
			So(target.ISOWeekday(day(7, 12, 0)), ShouldEqual, 6)
			So(target.ISOWeekday(day(8, 12, 0)), ShouldEqual, 7)
		})
	})
}

func TestStartOfISOWeek(t *testing.T) {
	Convey("Given any moment in a week", t, func() {
		Convey("Then the week starts at midnight on Monday", func() {
			monday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
			So(target.StartOfISOWeek(day(2, 0, 0)), ShouldEqual, monday)
			So(target.StartOfISOWeek(day(5, 16, 45)), ShouldEqual, monday)
			So(target.StartOfISOWeek(day(8, 23, 59)), ShouldEqual, monday)
		})
	})
}
