package repository_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/credora/creatorscore/internal/adapters/repository"
	"github.com/credora/creatorscore/internal/domain/model"
)

func TestFactorCodec(t *testing.T) {
	Convey("Given an ordered factor list", t, func() {
		factors := []model.ScoringFactor{
			{Factor: "Income Level", Score: 70, Weight: 0.35, Description: "Based on monthly revenue of $3500.00"},
			{Factor: "Income Stability", Score: 100, Weight: 0.35, Description: "Stable income (no change) (CV: 0.0%)"},
			{Factor: "Audience Size", Score: 40, Weight: 0.15},
		}

		Convey("When it is encoded and decoded", func() {
			encoded, err := repository.EncodeFactors(factors)
			So(err, ShouldBeNil)

			decoded, err := repository.DecodeFactors(encoded)
			So(err, ShouldBeNil)

			Convey("Then order, weights and descriptions survive exactly", func() {
				So(decoded, ShouldResemble, factors)
			})
		})
	})

	Convey("Given stored factor text", t, func() {
		Convey("When the text is empty", func() {
			decoded, err := repository.DecodeFactors("")

			Convey("Then decoding yields nil without error", func() {
				So(err, ShouldBeNil)
				So(decoded, ShouldBeNil)
			})
		})

		Convey("When the text is not valid JSON", func() {
			_, err := repository.DecodeFactors("{not json")

			Convey("Then decoding fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
