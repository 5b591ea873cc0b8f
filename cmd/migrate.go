package cmd

import (
	"changelog-api/config"
	"changelog-api/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

		db, err := config.InitDB(cfg.Database)
		if err != nil {
			return err
		}
		if err := config.Migrate(db); err != nil {
			return err
		}

		log.Info().Str("database", cfg.Database.Driver).Msg("schema migrated")
		return nil
	},
}
