package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"danceflow_backend/internals/configs"
	database "danceflow_backend/internals/databases"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "studioctl",
		Short:         "Operational tasks for the DanceFlow backend",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(checkEnvCmd())
	root.AddCommand(signCmd())
	root.AddCommand(remindCmd())
	return root
}

func openDB(cfg *configs.Config) (*gorm.DB, error) {
	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		return nil, err
	}
	return db, nil
}
