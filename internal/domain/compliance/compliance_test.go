package compliance_test

import (
	"testing"

	"github.com/bva/billabot/internal/domain/compliance"
	"github.com/bva/billabot/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFindOffenders(t *testing.T) {
	Convey("Given a batch of weekly totals", t, func() {
		totals := []model.Total{
			{Name: "A", BillableHours: 20, TotalHours: 25},
			{Name: "B", BillableHours: 24, TotalHours: 30},
			{Name: "C", BillableHours: 30, TotalHours: 32},
		}

		Convey("When evaluated against a target of 24", func() {
			offenders := compliance.FindOffenders(totals, 24)

			Convey("Then only totals strictly below target are flagged", func() {
				So(offenders, ShouldHaveLength, 1)
				So(offenders[0].Name, ShouldEqual, "A")
			})

			Convey("Then equal-to-target is compliant", func() {
				for _, o := range offenders {
					So(o.Name, ShouldNotEqual, "B")
				}
			})
		})

		Convey("When every total meets the target", func() {
			Convey("Then no offenders are returned", func() {
				So(compliance.FindOffenders(totals, 0), ShouldBeEmpty)
			})
		})

		Convey("When the batch is empty", func() {
			Convey("Then no offenders are returned", func() {
				So(compliance.FindOffenders(nil, 24), ShouldBeEmpty)
			})
		})
	})
}
