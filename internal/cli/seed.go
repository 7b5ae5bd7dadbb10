package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tbourn/pugorugh-backend/internal/domain"
	"github.com/tbourn/pugorugh-backend/internal/fixtures"
	"github.com/tbourn/pugorugh-backend/internal/repo"
	"github.com/tbourn/pugorugh-backend/internal/services"
)

var seedFile string

func init() {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load dog fixtures into the catalog",
		Long: "Loads a JSON or YAML dog list. An empty catalog receives every dog; " +
			"otherwise only breeds are refreshed, matched by dog name.",
		Args: cobra.NoArgs,
		RunE: runSeed,
	}
	cmd.Flags().StringVar(&seedFile, "file", "", "fixture file (default: $FIXTURES_PATH)")
	RootCmd.AddCommand(cmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	path := seedFile
	if path == "" {
		path = cfg.FixturesPath
	}

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer closeDB(db)
	if err := repo.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	res, err := seedFromFile(cmd.Context(), services.NewCatalogService(db, repo.DogStore{}), path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "seed: created=%d breeds_updated=%d\n", res.Created, res.BreedsUpdated)
	return err
}

// SeedResult reports what a seed run changed.
type SeedResult struct {
	Created       int
	BreedsUpdated int64
}

type seedCatalog interface {
	Count(ctx context.Context) (int64, error)
	CreateMany(ctx context.Context, in []services.NewDog) ([]domain.Dog, error)
	UpdateBreed(ctx context.Context, name, breed string) (int64, error)
}

func seedFromFile(ctx context.Context, catalog seedCatalog, path string) (SeedResult, error) {
	dogs, err := fixtures.LoadDogs(path)
	if err != nil {
		return SeedResult{}, fmt.Errorf("load fixtures %s: %w", path, err)
	}
	return seed(ctx, catalog, dogs)
}

// seed fills an empty catalog with dogs. A populated catalog is never
// extended; only the breeds of same-named dogs are refreshed.
func seed(ctx context.Context, catalog seedCatalog, dogs []services.NewDog) (SeedResult, error) {
	n, err := catalog.Count(ctx)
	if err != nil {
		return SeedResult{}, err
	}

	if n == 0 {
		created, err := catalog.CreateMany(ctx, dogs)
		if err != nil {
			return SeedResult{}, err
		}
		log.Info().Int("dogs", len(created)).Msg("seeded empty catalog")
		return SeedResult{Created: len(created)}, nil
	}

	var res SeedResult
	for _, d := range dogs {
		if d.Breed == "" {
			continue
		}
		changed, err := catalog.UpdateBreed(ctx, d.Name, d.Breed)
		if err != nil {
			return res, fmt.Errorf("update breed of %q: %w", d.Name, err)
		}
		res.BreedsUpdated += changed
	}
	log.Info().Int64("catalog", n).Int64("breeds_updated", res.BreedsUpdated).Msg("catalog already populated; refreshed breeds")
	return res, nil
}
