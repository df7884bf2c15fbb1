// Command seed populates the store with demo creators, platforms and
// synthetic month-by-month metrics so the scoring engine has data to
// score in local and demo environments.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/credora/creatorscore/internal/adapters/repository"
	"github.com/credora/creatorscore/internal/domain/model"
	"github.com/credora/creatorscore/internal/mocking"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		dbPath   string
		creators int
		months   int
		seed     int64
	)

	root := &cobra.Command{
		Use:   "seed",
		Short: "Seed the creator score database with synthetic demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := repository.New(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			return run(cmd.Context(), store, creators, months, seed)
		},
	}

	root.Flags().StringVar(&dbPath, "db", "creatorscore.db", "path to the SQLite database")
	root.Flags().IntVar(&creators, "creators", 5, "number of demo creators to create")
	root.Flags().IntVar(&months, "months", 6, "months of metric history per platform")
	root.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for reproducible data")

	return root
}

// demoNames cycle across seeded creators.
var demoNames = []string{
	"Ava Rivers", "Leo Tanaka", "Maya Osei", "Finn Berg", "Zoe Castillo",
	"Noah Lindqvist", "Ines Marchetti", "Kai Delacroix",
}

func run(ctx context.Context, store repository.Store, creators, months int, seed int64) error {
	gen := mocking.NewGenerator(seed)
	now := time.Now().UTC()
	from := now.AddDate(0, -(months - 1), 0)

	for i := 0; i < creators; i++ {
		creator := model.Creator{Name: demoNames[i%len(demoNames)]}
		if i >= len(demoNames) {
			creator.Name = fmt.Sprintf("%s %d", creator.Name, i/len(demoNames)+1)
		}
		creator.ID = fmt.Sprintf("creator-%03d", i+1)
		if err := store.CreateCreator(ctx, creator); err != nil {
			return err
		}

		platforms := []model.Platform{
			{CreatorID: creator.ID, Type: model.PlatformVideo, Handle: fmt.Sprintf("@%s-video", creator.ID)},
			{CreatorID: creator.ID, Type: model.PlatformMembership, Handle: fmt.Sprintf("@%s-members", creator.ID)},
		}
		// Every other creator also runs a photo account.
		if i%2 == 0 {
			platforms = append(platforms, model.Platform{
				CreatorID: creator.ID, Type: model.PlatformPhoto,
				Handle: fmt.Sprintf("@%s-photo", creator.ID),
			})
		}

		for pi := range platforms {
			platforms[pi].ID = fmt.Sprintf("%s-platform-%d", creator.ID, pi+1)
			if err := store.CreatePlatform(ctx, platforms[pi]); err != nil {
				return err
			}
			for _, m := range gen.MetricsForRange(platforms[pi], from, now) {
				if err := store.CreateMetric(ctx, m); err != nil {
					return err
				}
			}
		}

		fmt.Printf("seeded %s (%s) with %d platforms, %d months of metrics\n",
			creator.Name, creator.ID, len(platforms), months)
	}
	return nil
}
