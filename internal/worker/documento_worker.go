package worker

// documento_worker.go
// Processes document jobs from QueueDocumentos: renders the PDF for an
// already committed venta or remisión and hands it to the email queue.
// Rendering happens strictly after commit — a PDF failure never touches the
// document transaction.

import (
	"context"
	"encoding/json"
	"fmt"

	"ayher/internal/infra"
	"ayher/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type DocumentoWorker struct {
	ventaRepo      repository.VentaRepository
	remisionRepo   repository.RemisionRepository
	dispatcher     *Dispatcher
	empresa        string
	pdfStoragePath string
}

func NewDocumentoWorker(
	ventaRepo repository.VentaRepository,
	remisionRepo repository.RemisionRepository,
	dispatcher *Dispatcher,
	empresa string,
	pdfStoragePath string,
) *DocumentoWorker {
	return &DocumentoWorker{
		ventaRepo:      ventaRepo,
		remisionRepo:   remisionRepo,
		dispatcher:     dispatcher,
		empresa:        empresa,
		pdfStoragePath: pdfStoragePath,
	}
}

func (w *DocumentoWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var job DocumentoJob
	if err := json.Unmarshal(raw, &job); err != nil {
		// Malformed payloads never succeed on retry — log and drop.
		log.Error().Err(err).Msg("documento_worker: payload ilegible")
		return nil
	}

	id, err := uuid.Parse(job.DocumentoID)
	if err != nil {
		log.Error().Str("documento_id", job.DocumentoID).Msg("documento_worker: id inválido")
		return nil
	}

	var pdfPath, numero, asunto string
	switch job.Tipo {
	case DocumentoVenta:
		venta, err := w.ventaRepo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("documento_worker: venta %s: %w", job.DocumentoID, err)
		}
		pdfPath, err = infra.GenerarFacturaPDF(venta, w.empresa, w.pdfStoragePath)
		if err != nil {
			return fmt.Errorf("documento_worker: PDF factura %s: %w", venta.Numero, err)
		}
		numero = venta.Numero
		asunto = "Factura " + numero
	case DocumentoRemision:
		rem, err := w.remisionRepo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("documento_worker: remisión %s: %w", job.DocumentoID, err)
		}
		pdfPath, err = infra.GenerarRemisionPDF(rem, w.empresa, w.pdfStoragePath)
		if err != nil {
			return fmt.Errorf("documento_worker: PDF remisión %s: %w", rem.Numero, err)
		}
		numero = rem.Numero
		asunto = "Remisión " + numero
	default:
		log.Error().Str("tipo", job.Tipo).Msg("documento_worker: tipo de documento desconocido")
		return nil
	}

	log.Info().Str("tipo", job.Tipo).Str("numero", numero).Str("pdf", pdfPath).
		Msg("documento_worker: PDF generado")

	if job.Email == "" {
		return nil
	}
	return w.dispatcher.EncolarEmail(ctx, EmailJobPayload{
		ToEmail: job.Email,
		Subject: asunto + " - " + w.empresa,
		Body:    "Adjuntamos el documento " + numero + ".\n\n" + w.empresa,
		PDFPath: pdfPath,
	})
}
