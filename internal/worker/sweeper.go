package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DraftExpirer releases sale numbers held by abandoned drafts.
type DraftExpirer interface {
	ExpirarRascunhos(ctx context.Context, now time.Time) (int, error)
}

// StartReservationSweeper runs ExpirarRascunhos every interval until ctx ends.
func StartReservationSweeper(ctx context.Context, expirer DraftExpirer, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				n, err := expirer.ExpirarRascunhos(ctx, now)
				if err != nil {
					log.Error().Err(err).Msg("sweeper: failed to release expired reservations")
					continue
				}
				if n > 0 {
					log.Info().Int("released", n).Msg("sweeper: expired reservations released")
				}
			}
		}
	}()
}
