package worker

import (
	"context"
	"fmt"
	"time"

	"istorepro/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// ReciboQueue re-enqueues receipt jobs.
type ReciboQueue interface {
	EnqueueRecibo(ctx context.Context, job ReciboJob) error
}

type RetryCronConfig struct {
	Recibos repository.ReciboRepository
	Queue   ReciboQueue
	RDB     *redis.Client
}

// StartRetryCron re-enqueues failed receipts whose next_retry_at has passed.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()
		log.Info().Msg("retry_cron: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg, time.Now())
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig, now time.Time) int {
	recibos, err := cfg.Recibos.ListPendingRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return 0
	}
	requeued := 0
	for i := range recibos {
		rec := &recibos[i]
		if rec.RetryCount >= MaxReciboRetries {
			rec.NextRetryAt = nil
			_ = cfg.Recibos.Update(ctx, rec)
			if cfg.RDB != nil {
				payload := fmt.Sprintf(`{"venda_id":%q}`, rec.VendaID)
				SendToDLQ(ctx, cfg.RDB, QueueRecibo, JobRecibo, []byte(payload),
					fmt.Sprintf("max retries (%d) exceeded", MaxReciboRetries), rec.RetryCount)
			}
			continue
		}
		job := ReciboJob{VendaID: rec.VendaID}
		if rec.EmailDestino != nil && !rec.EmailEnviado {
			job.Email = *rec.EmailDestino
		}
		if err := cfg.Queue.EnqueueRecibo(ctx, job); err != nil {
			log.Error().Err(err).Str("venda_id", rec.VendaID).Msg("retry_cron: enqueue failed")
			continue
		}
		rec.NextRetryAt = nil
		_ = cfg.Recibos.Update(ctx, rec)
		requeued++
	}
	if requeued > 0 {
		log.Info().Int("count", requeued).Msg("retry_cron: receipts re-enqueued")
	}
	return requeued
}
