package worker

// requeue_cron.go
// Background goroutine that periodically drains the email DLQ back into the
// live queue once the SMTP circuit breaker has closed again. Document DLQ
// entries are left for manual inspection: a PDF that failed to render three
// times will not render on the fourth.

import (
	"context"
	"encoding/json"
	"time"

	"ayher/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	requeueTickInterval = 60 * time.Second
	requeueBatchSize    = 10
)

// StartRequeueCron launches the DLQ drain goroutine. It respects the context
// for graceful shutdown.
func StartRequeueCron(ctx context.Context, rdb *redis.Client, cb *infra.CircuitBreaker) {
	go func() {
		ticker := time.NewTicker(requeueTickInterval)
		defer ticker.Stop()

		log.Info().Msg("requeue_cron: iniciado")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("requeue_cron: detenido")
				return
			case <-ticker.C:
				drainEmailDLQ(ctx, rdb, cb)
			}
		}
	}()
}

func drainEmailDLQ(ctx context.Context, rdb *redis.Client, cb *infra.CircuitBreaker) {
	// Skip while the relay is still down — requeueing would only bounce the
	// jobs straight back.
	if cb.State() != infra.CBClosed {
		return
	}

	dlqKey := DLQPrefix + QueueEmail
	for i := 0; i < requeueBatchSize; i++ {
		raw, err := rdb.RPop(ctx, dlqKey).Result()
		if err != nil {
			return // empty or redis unavailable
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Msg("requeue_cron: entrada DLQ ilegible, descartada")
			continue
		}

		// Attempts restart from zero: the failure cause (relay down) is gone.
		job := Job{Type: entry.JobType, Payload: entry.Payload}
		encoded, err := json.Marshal(job)
		if err != nil {
			continue
		}
		if err := rdb.LPush(ctx, QueueEmail, encoded).Err(); err != nil {
			log.Error().Err(err).Msg("requeue_cron: no se pudo re-encolar, se devuelve a la DLQ")
			_ = rdb.LPush(ctx, dlqKey, raw).Err()
			return
		}
		log.Info().Str("job_type", entry.JobType).Msg("requeue_cron: job devuelto a la cola")
	}
}
