package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"danceflow_backend/internals/configs"
	database "danceflow_backend/internals/databases"
	"danceflow_backend/internals/seeds"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users and sample classes (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			studio, _ := cmd.Flags().GetString("studio")
			teacher, _ := cmd.Flags().GetString("teacher")

			cfg := configs.LoadEnv()
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := seeds.RunAllSeeds(db, seeds.Options{StudioID: studio, TeacherID: teacher}); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seed completed")
			return nil
		},
	}
	cmd.Flags().String("studio", "", "Studio ID assigned to seeded rows")
	cmd.Flags().String("teacher", "", "Teacher user ID for sample classes (default teacher-demo)")
	return cmd
}
