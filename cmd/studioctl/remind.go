package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"danceflow_backend/internals/configs"
	database "danceflow_backend/internals/databases"
	"danceflow_backend/internals/features/notifications/email"
	classService "danceflow_backend/internals/features/studio/classes/service"
)

func remindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind [class-id]",
		Short: "Email a class reminder to every enrolled student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			at, _ := cmd.Flags().GetString("time")
			studio, _ := cmd.Flags().GetString("studio")
			if date == "" {
				date = time.Now().AddDate(0, 0, 1).Format("2006-01-02")
			}

			cfg := configs.LoadEnv()
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			sender, err := email.NewSender(cfg.Email)
			if err != nil {
				return err
			}
			q := email.NewQueue(sender, email.QueueOptions{
				RatePerSecond: cfg.Email.RatePerSecond,
				MaxRetries:    cfg.Email.MaxRetries,
				RetryDelay:    cfg.Email.RetryDelay,
				Size:          cfg.Email.QueueSize,
			})

			n, err := classService.NewClassService(db, q).SendReminders(cmd.Context(), studio, args[0], date, at)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			if err := drain(ctx, q, n); err != nil {
				return err
			}
			m := q.Metrics()
			fmt.Fprintf(cmd.OutOrStdout(), "queued=%d sent=%d failed=%d\n", n, m.TotalSent, m.TotalFailed)
			return nil
		},
	}
	cmd.Flags().String("date", "", "Class date, YYYY-MM-DD (default tomorrow)")
	cmd.Flags().String("time", "", "Class start time shown in the email")
	cmd.Flags().String("studio", "", "Restrict lookup to this studio")
	return cmd
}

// drain menjalankan queue sampai n email selesai (terkirim atau gagal).
func drain(ctx context.Context, q *email.Queue, n int) error {
	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- q.Run(runCtx) }()

	t := time.NewTicker(100 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			stop()
			<-done
			return fmt.Errorf("email queue not drained: %w", ctx.Err())
		case <-t.C:
			m := q.Metrics()
			if m.TotalSent+m.TotalFailed >= int64(n) {
				stop()
				return <-done
			}
		}
	}
}
