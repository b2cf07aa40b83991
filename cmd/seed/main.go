package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/carecompass/backend/internal/adapters/database"
	"github.com/carecompass/backend/internal/catalog"
	"github.com/carecompass/backend/internal/infrastructure/clients/postgres"
	"github.com/carecompass/backend/internal/infrastructure/observability"
	"github.com/carecompass/backend/pkg/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the symptom and doctor catalog into PostgreSQL",
		RunE:  runSeed,
	}
	rootCmd.Flags().String("file", "", "catalog JSON file (CATALOG_PATH or the embedded catalog when empty)")
	rootCmd.Flags().Bool("reset", os.Getenv("RESET_DB") == "true", "remove existing catalog versions first")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Create the catalog and feedback tables without seeding",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pgClient, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pgClient.Close()

			if err := database.EnsureSchema(ctx, pgClient); err != nil {
				return err
			}
			log.Info().Msg("Schema applied")
			return nil
		},
	})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}
}

func connect(ctx context.Context) (*postgres.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	observability.InitLogger("carecompass-seed", cfg.Env)
	return postgres.NewClient(ctx, &cfg.Database)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	path, _ := cmd.Flags().GetString("file")
	reset, _ := cmd.Flags().GetBool("reset")
	if path == "" {
		path = os.Getenv("CATALOG_PATH")
	}

	raw := catalog.Embedded()
	if path != "" {
		var err error
		if raw, err = os.ReadFile(path); err != nil {
			return err
		}
	}

	doc, err := catalog.Decode(raw)
	if err != nil {
		return err
	}

	pgClient, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	if err := database.EnsureSchema(ctx, pgClient); err != nil {
		return err
	}

	if reset {
		log.Info().Msg("Removing existing catalog versions before seeding")
		if err := database.ResetCatalog(ctx, pgClient); err != nil {
			return err
		}
	}

	if err := database.SeedCatalog(ctx, pgClient, doc); err != nil {
		return err
	}

	log.Info().
		Str("version", doc.Version).
		Int("symptoms", len(doc.Symptoms)).
		Int("doctors", len(doc.Doctors)).
		Msg("Catalog seeded")
	return nil
}
