package service_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/credora/creatorscore/internal/adapters/repository"
	service "github.com/credora/creatorscore/internal/app"
	"github.com/credora/creatorscore/internal/domain/model"
	"github.com/credora/creatorscore/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newTestStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()
	store, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// seedCreator creates a creator with one video platform and metrics for the
// given number of complete past months, newest month one month ago.
func seedCreator(t *testing.T, store repository.Store, creatorID string, months int) {
	t.Helper()
	ctx := context.Background()

	if err := store.CreateCreator(ctx, model.Creator{ID: creatorID, Name: "Test " + creatorID}); err != nil {
		t.Fatalf("create creator: %v", err)
	}
	platformID := creatorID + "-video"
	if err := store.CreatePlatform(ctx, model.Platform{
		ID: platformID, CreatorID: creatorID,
		Type: model.PlatformVideo, Handle: "@" + creatorID,
	}); err != nil {
		t.Fatalf("create platform: %v", err)
	}

	now := time.Now().UTC()
	for i := 1; i <= months; i++ {
		date := model.MonthStart(now).AddDate(0, -i, 0).AddDate(0, 0, 9)
		if err := store.CreateMetric(ctx, model.Metric{
			CreatorID:           creatorID,
			PlatformID:          platformID,
			Date:                date,
			AudienceSize:        50_000,
			EngagementRatePct:   4.0,
			EstimatedRevenueUSD: 2_500,
			AvgViewDurationSec:  360,
			HasViewDuration:     true,
		}); err != nil {
			t.Fatalf("create metric: %v", err)
		}
	}
}

func TestGenerateScores(t *testing.T) {
	ctx := context.Background()

	Convey("Given a creator with three months of metrics and no scores", t, func() {
		store := newTestStore(t)
		seedCreator(t, store, "creator-1", 3)
		svc := service.New(store)

		Convey("When scores are generated", func() {
			scores, err := svc.GenerateScores(ctx, "creator-1")
			So(err, ShouldBeNil)

			Convey("Then one score exists per metric month, newest first", func() {
				So(scores, ShouldHaveLength, 3)
				for i, cs := range scores {
					So(cs.Timestamp.Equal(model.MonthStart(cs.Timestamp)), ShouldBeTrue)
					So(cs.OverallScore, ShouldBeBetweenOrEqual, 0, 100)
					So(cs.PlatformScores, ShouldHaveLength, 1)
					So(cs.PlatformScores[0].Factors, ShouldNotBeEmpty)
					if i > 0 {
						So(scores[i-1].Timestamp.After(cs.Timestamp), ShouldBeTrue)
					}
				}

				n, err := store.CountCreditScores(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 3)
			})

			Convey("And when generation runs a second time", func() {
				again, err := svc.GenerateScores(ctx, "creator-1")
				So(err, ShouldBeNil)

				Convey("Then no new scores are created", func() {
					So(again, ShouldHaveLength, 3)

					n, err := store.CountCreditScores(ctx)
					So(err, ShouldBeNil)
					So(n, ShouldEqual, 3)
				})
			})
		})
	})

	Convey("Given an unknown creator", t, func() {
		store := newTestStore(t)
		svc := service.New(store)

		Convey("When scores are generated", func() {
			_, err := svc.GenerateScores(ctx, "ghost")

			Convey("Then the creator lookup error surfaces", func() {
				So(err, ShouldWrap, repository.ErrCreatorNotFound)
			})
		})
	})

	Convey("Given a creator with no metrics", t, func() {
		store := newTestStore(t)
		So(store.CreateCreator(ctx, model.Creator{ID: "creator-1", Name: "Empty"}), ShouldBeNil)
		svc := service.New(store)

		Convey("When scores are generated", func() {
			_, err := svc.GenerateScores(ctx, "creator-1")

			Convey("Then ErrNoMetricsFound is returned", func() {
				So(err, ShouldWrap, service.ErrNoMetricsFound)
			})
		})
	})
}

func TestGetLatestScore(t *testing.T) {
	ctx := context.Background()

	storeScore := func(t *testing.T, store repository.Store, month time.Time, overall int, desc string) {
		t.Helper()
		_, err := store.CreateCreditScore(ctx, model.CreditScore{
			CreatorID:    "creator-1",
			OverallScore: overall,
			Timestamp:    model.MonthStart(month),
			PlatformScores: []model.PlatformScore{
				{
					PlatformID:   "platform-1",
					PlatformType: model.PlatformVideo,
					Score:        overall,
					Factors: []model.ScoringFactor{
						{Factor: "Audience Size", Score: overall, Weight: 1.0, Description: desc},
					},
				},
			},
		})
		if err != nil {
			t.Fatalf("store score: %v", err)
		}
	}

	Convey("Given a creator with five monthly scores", t, func() {
		store := newTestStore(t)
		So(store.CreateCreator(ctx, model.Creator{ID: "creator-1", Name: "Ava"}), ShouldBeNil)
		svc := service.New(store)

		base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
		overalls := []int{80, 70, 60, 50, 40} // newest to oldest
		for i, overall := range overalls {
			desc := "older month"
			if i == 0 {
				desc = "newest month"
			}
			storeScore(t, store, base.AddDate(0, -i, 0), overall, desc)
		}

		Convey("When the latest score is requested", func() {
			latest, err := svc.GetLatestScore(ctx, "creator-1")
			So(err, ShouldBeNil)
			So(latest, ShouldNotBeNil)

			Convey("Then only the newest three months are averaged", func() {
				So(latest.OverallScore, ShouldEqual, 70) // (80+70+60)/3
				So(latest.PlatformScores, ShouldHaveLength, 1)
				So(latest.PlatformScores[0].Score, ShouldEqual, 70)
			})

			Convey("Then the factor breakdown comes verbatim from the newest month", func() {
				So(latest.PlatformScores[0].Factors, ShouldHaveLength, 1)
				So(latest.PlatformScores[0].Factors[0].Description, ShouldEqual, "newest month")
			})

			Convey("Then the timestamp reflects the query time, not a month", func() {
				So(time.Since(latest.Timestamp), ShouldBeLessThan, time.Minute)
			})
		})
	})

	Convey("Given a creator with no scores", t, func() {
		store := newTestStore(t)
		So(store.CreateCreator(ctx, model.Creator{ID: "creator-1", Name: "Ava"}), ShouldBeNil)
		svc := service.New(store)

		Convey("When the latest score is requested", func() {
			latest, err := svc.GetLatestScore(ctx, "creator-1")

			Convey("Then nil is returned without error", func() {
				So(err, ShouldBeNil)
				So(latest, ShouldBeNil)
			})
		})
	})
}

func TestGetScoreHistory(t *testing.T) {
	ctx := context.Background()

	Convey("Given a creator with no scores", t, func() {
		store := newTestStore(t)
		So(store.CreateCreator(ctx, model.Creator{ID: "creator-1", Name: "Ava"}), ShouldBeNil)
		svc := service.New(store)

		Convey("When the history is requested", func() {
			history, err := svc.GetScoreHistory(ctx, "creator-1")

			Convey("Then an empty history is returned without error", func() {
				So(err, ShouldBeNil)
				So(history, ShouldBeEmpty)
			})
		})
	})
}

func TestGenerateAll(t *testing.T) {
	ctx := context.Background()

	Convey("Given two creators with metrics and one without", t, func() {
		store := newTestStore(t)
		seedCreator(t, store, "creator-1", 2)
		seedCreator(t, store, "creator-2", 2)
		So(store.CreateCreator(ctx, model.Creator{ID: "creator-3", Name: "Empty"}), ShouldBeNil)
		svc := service.New(store, service.WithBatchWorkers(2))

		Convey("When a batch run executes", func() {
			succeeded, err := svc.GenerateAll(ctx)
			So(err, ShouldBeNil)

			Convey("Then the metric-less creator fails without aborting the rest", func() {
				So(succeeded, ShouldEqual, 2)

				n, err := store.CountCreditScores(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 4)
			})
		})
	})
}
