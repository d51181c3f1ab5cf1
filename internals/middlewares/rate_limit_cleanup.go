package middlewares

import (
	"context"
	"log"
	"time"
)

// RunRateLimitCleanup menghapus counter limiter yang sudah kadaluarsa secara berkala
// sampai ctx selesai.
func RunRateLimitCleanup(ctx context.Context, store *GormStorage, every time.Duration) error {
	if every <= 0 {
		every = 10 * time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			n, err := store.PurgeExpired()
			if err != nil {
				log.Printf("[CLEANUP ERROR] rate_limit_counters: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[CLEANUP] %d rate limit counter kadaluarsa dihapus", n)
			}
		}
	}
}
