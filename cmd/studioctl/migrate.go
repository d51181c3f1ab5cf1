package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"danceflow_backend/internals/configs"
	database "danceflow_backend/internals/databases"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configs.LoadEnv()
			return database.Migrate(cfg.DB.URL())
		},
	})

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			cfg := configs.LoadEnv()
			if err := database.MigrateDown(cfg.DB.URL(), steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d step(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntP("steps", "n", 1, "Number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}
