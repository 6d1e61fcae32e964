package cli

import (
	"log"

	"github.com/spf13/cobra"

	"duomonggo_backend/internals/databases/migrations"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run embedded SQL migrations",
	}
	cmd.AddCommand(
		migrateStep("up", "Apply all pending migrations", migrations.Up),
		migrateStep("down", "Roll back the latest migration", migrations.Down),
		migrateStep("status", "Print migration status", migrations.Status),
	)
	return cmd
}

func migrateStep(use, short string, run migrations.Func) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(db)

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := run(cmd.Context(), sqlDB); err != nil {
				return err
			}
			log.Printf("[MIGRATE] %s selesai", use)
			return nil
		},
	}
}
