package cmd

import (
	"context"

	"github.com/EO-DataHub/eodhp-resource-services/db"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the collections table and run database migrations",
	Long:  `Runs the embedded goose migrations against the sqlite or postgres store.`,
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config and set up logging
		commonSetUp()

		store := openStore(context.Background())
		defer store.Close()

		sqlStore, ok := store.(*db.SQLStore)
		if !ok {
			log.Fatal().Str("backend", appCfg.Store.Backend).Msg("Migrations only apply to the sqlite and postgres backends")
		}

		log.Info().Msgf("Running migrations...")
		if err := sqlStore.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
