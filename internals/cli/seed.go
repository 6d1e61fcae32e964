package cli

import (
	"github.com/spf13/cobra"

	"duomonggo_backend/internals/seeds"
)

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo courses, questions and answers (idempotent by title)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(db)
			return seeds.RunAllSeeds(cmd.Context(), db, file, cfg.Location())
		},
	}
	cmd.Flags().StringVar(&file, "file", seeds.DefaultCoursesFile, "path to courses JSON")
	return cmd
}
