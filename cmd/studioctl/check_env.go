package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"danceflow_backend/internals/configs"
)

func checkEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-env",
		Short: "Report missing or invalid environment variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configs.LoadEnv()
			missing := cfg.Validate()
			out := cmd.OutOrStdout()
			if len(missing) == 0 {
				fmt.Fprintln(out, "environment OK")
				return nil
			}
			for _, m := range missing {
				fmt.Fprintln(out, "missing:", m)
			}
			return fmt.Errorf("%d environment problem(s)", len(missing))
		},
	}
}
