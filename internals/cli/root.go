package cli

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"duomonggo_backend/internals/configs"
	database "duomonggo_backend/internals/databases"
)

// Execute menjalankan CLI; tanpa subcommand = serve.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "duomonggo_backend",
		Short:        "Duomonggo learning platform backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	return cmd
}

// openDB: config + koneksi gorm, dipakai semua subcommand.
func openDB(ctx context.Context) (*configs.AppConfig, *gorm.DB, error) {
	cfg, err := configs.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Ping(ctx, db); err != nil {
		closeDB(db)
		return nil, nil, err
	}
	return cfg, db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("[WARN] close db: %v", err)
		}
	}
}
