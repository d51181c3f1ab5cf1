package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"danceflow_backend/internals/configs"
	paymentService "danceflow_backend/internals/features/finance/payments/service"
)

// sign: buat body callback ber-signature untuk tes manual webhook.
func signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [file]",
		Short: "Sign a payment callback body (reads stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, _ := cmd.Flags().GetString("secret")
			if secret == "" {
				secret = configs.GetEnv("PAYMENT_WEBHOOK_SECRET")
			}
			if secret == "" {
				return errors.New("secret is required (--secret or PAYMENT_WEBHOOK_SECRET)")
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			raw, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			body, err := paymentService.SignBody(secret, raw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}
	cmd.Flags().String("secret", "", "Webhook secret (default $PAYMENT_WEBHOOK_SECRET)")
	return cmd
}
