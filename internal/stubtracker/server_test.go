package stubtracker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/bva/billabot/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func TestHandleReport(t *testing.T) {
	Convey("Given a stub tracker server", t, func() {
		srv := NewServer(Config{Addr: ":0", TeamSize: 5})

		Convey("When a report is requested", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/report?from=20250602&to=20250606&department=Development", nil)
			rec := httptest.NewRecorder()
			srv.handleReport(rec, req)

			Convey("Then it returns a full roster of totals", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var payload reportResponse
				So(json.Unmarshal(rec.Body.Bytes(), &payload), ShouldBeNil)
				So(payload.Totals, ShouldHaveLength, 5)
				for _, total := range payload.Totals {
					So(total.Name, ShouldNotBeEmpty)
					So(total.TotalHours, ShouldBeGreaterThanOrEqualTo, total.BillableHours)
				}
			})
		})

		Convey("When the from date is malformed", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/report?from=junk", nil)
			rec := httptest.NewRecorder()
			srv.handleReport(rec, req)

			Convey("Then it rejects the request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a non-GET method is used", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/report", nil)
			rec := httptest.NewRecorder()
			srv.handleReport(rec, req)

			Convey("Then it is not allowed", func() {
				So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestGenerateTotals(t *testing.T) {
	Convey("Given the totals generator", t, func() {
		now := time.Date(2025, 6, 4, 14, 0, 0, 0, time.UTC)

		Convey("When generating a large batch", func() {
			totals := generateTotals(now, 100)

			Convey("Then every entry stays within sane bounds", func() {
				So(totals, ShouldHaveLength, 100)
				for _, total := range totals {
					So(total.BillableHours, ShouldBeGreaterThanOrEqualTo, 0)
					So(total.TotalHours, ShouldBeGreaterThan, total.BillableHours)
				}
			})
		})

		Convey("When generating an empty batch", func() {
			totals := generateTotals(now, 0)

			Convey("Then the result is empty", func() {
				So(totals, ShouldBeEmpty)
			})
		})
	})
}
