package cmd

import (
	"context"

	"github.com/EO-DataHub/eodhp-resource-services/db"
	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var seed bool

var initDataCmd = &cobra.Command{
	Use:   "init-data",
	Short: "Create any missing collections",
	Long: `Creates each configured collection that does not exist yet as an empty array.
With --seed, missing collections are filled with sample records instead.
Existing collections are never touched.`,
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config and set up logging
		commonSetUp()

		ctx := context.Background()
		store := openStore(ctx)
		defer store.Close()

		created, err := initCollections(ctx, store, seedData(appCfg.Collections.Users, appCfg.Collections.Products), seed)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialise collections")
		}
		log.Info().Strs("created", created).Msg("Collections initialised")
	},
}

func init() {
	rootCmd.AddCommand(initDataCmd)
	initDataCmd.Flags().BoolVar(&seed, "seed", false, "fill new collections with sample records")
}

// initCollections saves every collection in samples that the store does not
// have yet, either empty or with its samples, and returns the names it created.
func initCollections(ctx context.Context, store db.CollectionStore, samples map[string][]models.Record, withSamples bool) ([]string, error) {
	var created []string

	for name, records := range samples {
		_, err := store.Load(ctx, name)
		if err == nil {
			log.Debug().Str("collection", name).Msg("Collection exists, skipping")
			continue
		}
		if !errors.Is(err, db.ErrCollectionNotFound) {
			return created, err
		}

		if !withSamples {
			records = []models.Record{}
		}
		if err := store.Save(ctx, name, records); err != nil {
			return created, err
		}
		created = append(created, name)
	}

	return created, nil
}

func seedData(users, products string) map[string][]models.Record {
	return map[string][]models.Record{
		users: {
			{"id": "1", "name": "Ada Lovelace", "email": "ada@example.com", "role": "admin"},
			{"id": "2", "name": "Alan Turing", "email": "alan@example.com", "role": "user"},
		},
		products: {
			{"id": 1, "name": "Laptop", "category": "electronics", "price": 999.99},
			{"id": 2, "name": "Desk Lamp", "category": "home", "price": 24.5},
			{"id": 3, "name": "Headphones", "category": "electronics", "price": 149},
		},
	}
}
