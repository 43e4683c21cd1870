package worker

// email_worker.go
// Processes email jobs from QueueEmail through the SMTP circuit breaker:
// when the relay is down, jobs fast-fail and ride the retry/DLQ path instead
// of blocking workers on timeouts.

import (
	"context"
	"encoding/json"

	"ayher/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: payload ilegible")
		return nil
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: destinatario vacío, descartado")
		return nil
	}

	err := w.cb.Execute(func() error {
		return w.mailer.SendDocumento(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: envío falló")
		return err
	}

	log.Info().Str("to", payload.ToEmail).Str("subject", payload.Subject).
		Msg("email_worker: documento enviado")
	return nil
}
