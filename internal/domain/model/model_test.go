package model_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/credora/creatorscore/internal/domain/model"
)

func TestMonthHelpers(t *testing.T) {
	Convey("Given timestamps across a calendar month", t, func() {
		mid := time.Date(2025, 4, 17, 13, 45, 12, 0, time.UTC)

		Convey("Then MonthKey buckets by calendar month", func() {
			So(model.MonthKey(mid), ShouldEqual, "2025-04")
			So(model.MonthKey(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)), ShouldEqual, "2025-04")
			So(model.MonthKey(time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC)), ShouldEqual, "2025-04")
			So(model.MonthKey(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)), ShouldEqual, "2025-05")
		})

		Convey("Then MonthKey normalizes to UTC before bucketing", func() {
			// 23:30 on April 30 in UTC+2 is still April in UTC.
			zone := time.FixedZone("UTC+2", 2*60*60)
			late := time.Date(2025, 4, 30, 23, 30, 0, 0, zone)
			So(model.MonthKey(late), ShouldEqual, "2025-04")

			// 01:00 on May 1 in UTC+2 is April 30 in UTC.
			early := time.Date(2025, 5, 1, 1, 0, 0, 0, zone)
			So(model.MonthKey(early), ShouldEqual, "2025-04")
		})

		Convey("Then MonthStart returns the first instant of the month", func() {
			So(model.MonthStart(mid).Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})

		Convey("Then MonthEnd is just before the next month starts", func() {
			end := model.MonthEnd(mid)
			So(end.Before(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(model.MonthKey(end), ShouldEqual, "2025-04")
		})
	})
}
