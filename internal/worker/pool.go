package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueDocumentos = "jobs:documentos"
	QueueEmail      = "jobs:email"

	// MaxJobAttempts before a job lands in the DLQ.
	MaxJobAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Processor handles one job payload. A non-nil error re-enqueues the job
// until MaxJobAttempts, then it moves to the DLQ.
type Processor interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// Document kinds carried by DocumentoJob.
const (
	DocumentoVenta    = "venta"
	DocumentoRemision = "remision"
)

// DocumentoJob asks the documento worker to render a PDF and mail it.
type DocumentoJob struct {
	Tipo        string `json:"tipo"` // venta | remision
	DocumentoID string `json:"documento_id"`
	Email       string `json:"email"`
}

// EncolarDocumento pushes a PDF render+mail job.
func (d *Dispatcher) EncolarDocumento(ctx context.Context, job DocumentoJob) error {
	return d.enqueue(ctx, QueueDocumentos, "documento", job)
}

// EncolarEmail pushes an email job.
func (d *Dispatcher) EncolarEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Pool consumes the job queues with a fixed set of goroutines.
type Pool struct {
	rdb        *redis.Client
	processors map[string]Processor // queue → processor
}

func NewPool(rdb *redis.Client, documentos, email Processor) *Pool {
	return &Pool{
		rdb: rdb,
		processors: map[string]Processor{
			QueueDocumentos: documentos,
			QueueEmail:      email,
		},
	}
}

// Start launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go p.runWorker(ctx, i)
	}
	log.Info().Int("workers", numWorkers).Msg("worker pool iniciado")
}

func (p *Pool) runWorker(ctx context.Context, id int) {
	queues := []string{QueueDocumentos, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker detenido")
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			p.processJob(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) processJob(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("job ilegible, descartado")
		return
	}

	proc, ok := p.processors[queue]
	if !ok || proc == nil {
		log.Error().Str("queue", queue).Msg("cola sin procesador registrado")
		return
	}

	if err := proc.Process(ctx, job.Payload); err != nil {
		job.Attempts++
		if job.Attempts >= MaxJobAttempts {
			SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
			return
		}
		encoded, mErr := json.Marshal(job)
		if mErr != nil {
			log.Error().Err(mErr).Msg("no se pudo re-encolar el job")
			return
		}
		if pushErr := p.rdb.LPush(ctx, queue, encoded).Err(); pushErr != nil {
			log.Error().Err(pushErr).Str("queue", queue).Msg("no se pudo re-encolar el job")
			return
		}
		log.Warn().
			Str("queue", queue).
			Str("type", job.Type).
			Int("attempts", job.Attempts).
			Err(err).
			Msg("job falló, re-encolado")
	}
}
