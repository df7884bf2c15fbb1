package repository_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/credora/creatorscore/internal/adapters/repository"
	"github.com/credora/creatorscore/internal/domain/model"
)

func newTestStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()
	store, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreatorStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store := newTestStore(t)

		Convey("When an unknown creator is requested", func() {
			_, err := store.GetCreator(ctx, "nope")

			Convey("Then ErrCreatorNotFound is returned", func() {
				So(err, ShouldWrap, repository.ErrCreatorNotFound)
			})
		})

		Convey("When a creator is created", func() {
			err := store.CreateCreator(ctx, model.Creator{ID: "creator-1", Name: "Ava Rivers"})
			So(err, ShouldBeNil)

			Convey("Then it can be fetched and listed", func() {
				got, err := store.GetCreator(ctx, "creator-1")
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Ava Rivers")

				all, err := store.ListCreators(ctx)
				So(err, ShouldBeNil)
				So(all, ShouldHaveLength, 1)

				n, err := store.CountCreators(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})
	})
}

func TestMetricStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a creator with a platform and three months of metrics", t, func() {
		store := newTestStore(t)
		So(store.CreateCreator(ctx, model.Creator{ID: "creator-1", Name: "Ava"}), ShouldBeNil)
		So(store.CreatePlatform(ctx, model.Platform{
			ID: "platform-1", CreatorID: "creator-1",
			Type: model.PlatformVideo, Handle: "@ava",
		}), ShouldBeNil)

		base := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			So(store.CreateMetric(ctx, model.Metric{
				CreatorID:           "creator-1",
				PlatformID:          "platform-1",
				Date:                base.AddDate(0, -i, 0),
				AudienceSize:        int64(10_000 + i),
				EngagementRatePct:   3.5,
				EstimatedRevenueUSD: 1_000,
			}), ShouldBeNil)
		}

		Convey("When all metrics in range are listed", func() {
			metrics, err := store.ListMetrics(ctx, "creator-1",
				base.AddDate(0, -11, 0), base)
			So(err, ShouldBeNil)

			Convey("Then they come back newest first", func() {
				So(metrics, ShouldHaveLength, 3)
				So(metrics[0].Date.After(metrics[1].Date), ShouldBeTrue)
				So(metrics[1].Date.After(metrics[2].Date), ShouldBeTrue)
				So(metrics[0].AudienceSize, ShouldEqual, 10_000)
			})
		})

		Convey("When the range excludes the oldest month", func() {
			metrics, err := store.ListMetrics(ctx, "creator-1",
				base.AddDate(0, -1, 0), base)
			So(err, ShouldBeNil)

			Convey("Then only two metrics are returned", func() {
				So(metrics, ShouldHaveLength, 2)
			})
		})

		Convey("When the platforms are listed", func() {
			platforms, err := store.ListPlatforms(ctx, "creator-1")
			So(err, ShouldBeNil)
			So(platforms, ShouldHaveLength, 1)
			So(platforms[0].Type, ShouldEqual, model.PlatformVideo)
		})
	})
}

func TestCreditScoreStore(t *testing.T) {
	ctx := context.Background()

	newScore := func(month time.Time, overall int) model.CreditScore {
		return model.CreditScore{
			CreatorID:    "creator-1",
			OverallScore: overall,
			Timestamp:    model.MonthStart(month),
			PlatformScores: []model.PlatformScore{
				{
					PlatformID:   "platform-1",
					PlatformType: model.PlatformVideo,
					Score:        overall,
					Factors: []model.ScoringFactor{
						{Factor: "Audience Size", Score: overall, Weight: 1.0, Description: "Based on audience of 10000"},
					},
				},
			},
		}
	}

	Convey("Given a store with a creator", t, func() {
		store := newTestStore(t)
		So(store.CreateCreator(ctx, model.Creator{ID: "creator-1", Name: "Ava"}), ShouldBeNil)

		april := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

		Convey("When a credit score is persisted", func() {
			created, err := store.CreateCreditScore(ctx, newScore(april, 72))
			So(err, ShouldBeNil)
			So(created.ID, ShouldNotBeEmpty)

			Convey("Then it lists back with decoded factors", func() {
				scores, err := store.ListCreditScores(ctx, "creator-1")
				So(err, ShouldBeNil)
				So(scores, ShouldHaveLength, 1)
				So(scores[0].OverallScore, ShouldEqual, 72)
				So(scores[0].Timestamp.Equal(april), ShouldBeTrue)
				So(scores[0].PlatformScores, ShouldHaveLength, 1)
				So(scores[0].PlatformScores[0].Factors, ShouldHaveLength, 1)
				So(scores[0].PlatformScores[0].Factors[0].Description,
					ShouldEqual, "Based on audience of 10000")
			})

			Convey("And when the same month is scored again", func() {
				_, err := store.CreateCreditScore(ctx, newScore(april.AddDate(0, 0, 20), 80))

				Convey("Then ErrMonthAlreadyScored is returned and nothing is stored", func() {
					So(err, ShouldWrap, repository.ErrMonthAlreadyScored)

					n, err := store.CountCreditScores(ctx)
					So(err, ShouldBeNil)
					So(n, ShouldEqual, 1)
				})
			})

			Convey("And when a different month is scored", func() {
				_, err := store.CreateCreditScore(ctx, newScore(april.AddDate(0, 1, 0), 75))
				So(err, ShouldBeNil)

				Convey("Then scores list newest first", func() {
					scores, err := store.ListCreditScores(ctx, "creator-1")
					So(err, ShouldBeNil)
					So(scores, ShouldHaveLength, 2)
					So(scores[0].OverallScore, ShouldEqual, 75)
					So(scores[1].OverallScore, ShouldEqual, 72)
				})
			})
		})

		Convey("When a creator has no scores", func() {
			scores, err := store.ListCreditScores(ctx, "creator-1")
			So(err, ShouldBeNil)
			So(scores, ShouldBeEmpty)
		})
	})
}
