package service

import (
	"context"
	"errors"
	"time"

	"ayher/internal/apierror"
	"ayher/internal/dto"
	"ayher/internal/model"
	"ayher/internal/moneda"
	"ayher/internal/repository"
	"ayher/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RemisionService interface {
	Registrar(ctx context.Context, req dto.RegistrarRemisionRequest, usuario string) (*dto.RemisionResponse, error)
	// MarcarFacturada closes a delivery note without a covering invoice
	// (cash settled outside the system, or historical cleanup).
	MarcarFacturada(ctx context.Context, id uuid.UUID, usuario string) (*dto.RemisionResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.RemisionResponse, error)
	Listar(ctx context.Context, filter repository.RemisionFilter) (*dto.RemisionListResponse, error)
}

type remisionService struct {
	repo           repository.RemisionRepository
	movimientoRepo repository.MovimientoRepository
	inventario     InventarioService
	tasas          TasaService
	dispatcher     *worker.Dispatcher
}

func NewRemisionService(
	repo repository.RemisionRepository,
	movimientoRepo repository.MovimientoRepository,
	inventario InventarioService,
	tasas TasaService,
	dispatcher *worker.Dispatcher,
) RemisionService {
	return &remisionService{
		repo:           repo,
		movimientoRepo: movimientoRepo,
		inventario:     inventario,
		tasas:          tasas,
		dispatcher:     dispatcher,
	}
}

// Registrar ships goods ahead of the invoice. Stock is decremented now, one
// Salida por Remisión movement per line; any line without sufficient stock
// rejects the whole document.
func (s *remisionService) Registrar(ctx context.Context, req dto.RegistrarRemisionRequest, usuario string) (*dto.RemisionResponse, error) {
	tasa, err := s.tasas.Vigente(ctx)
	if err != nil {
		return nil, err
	}

	clienteID, err := parseOptionalUUID(req.ClienteID, "cliente_id")
	if err != nil {
		return nil, err
	}

	remision := &model.Remision{
		ClienteID:     clienteID,
		TasaCambio:    tasa,
		Observaciones: req.Observaciones,
		Usuario:       usuario,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.siguienteNumeroTx(tx)
		if err != nil {
			return err
		}
		remision.Numero = numero

		totalCordoba := decimal.Zero
		for _, l := range req.Lineas {
			articuloID, err := uuid.Parse(l.ArticuloID)
			if err != nil {
				return &apierror.ValidacionError{Detalle: "articulo_id inválido: " + l.ArticuloID}
			}
			if !l.PrecioCordoba.IsPositive() {
				return &apierror.ValidacionError{Detalle: "el precio unitario debe ser mayor que cero"}
			}

			precioCordoba := l.PrecioCordoba.Round(moneda.PrecisionUnitaria)
			precioDolar := moneda.ADolar(precioCordoba, tasa)
			tasaSnap := tasa

			mov, err := s.inventario.AjustarUnoTx(tx, AjusteLinea{
				ArticuloID:    articuloID,
				Tipo:          model.TipoSalidaPorRemision,
				Cantidad:      l.Cantidad,
				PrecioCordoba: &precioCordoba,
				PrecioDolar:   &precioDolar,
				TasaCambio:    &tasaSnap,
				Anotacion:     "Remisión " + remision.Numero,
			}, usuario)
			if err != nil {
				return err
			}

			remision.Detalles = append(remision.Detalles, model.RemisionDetalle{
				ArticuloID:    articuloID,
				MovimientoID:  mov.ID,
				Cantidad:      l.Cantidad,
				PrecioCordoba: precioCordoba,
				PrecioDolar:   precioDolar,
			})
			totalCordoba = totalCordoba.Add(precioCordoba.Mul(decimal.NewFromInt(int64(l.Cantidad))))
		}

		remision.TotalCordoba = moneda.TotalCordoba(totalCordoba)
		remision.TotalDolar = moneda.TotalDolar(totalCordoba, tasa)

		if err := s.repo.CreateTx(tx, remision); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &apierror.ConflictoError{Detalle: "número de remisión ya emitido: " + remision.Numero}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("remision_id", remision.ID.String()).
		Str("numero", remision.Numero).
		Int("lineas", len(remision.Detalles)).
		Str("usuario", usuario).
		Msg("remisión registrada")

	if req.EnviarEmail != nil && s.dispatcher != nil {
		s.encolarPDF(ctx, remision.ID, *req.EnviarEmail)
	}

	return remisionToResponse(remision), nil
}

// siguienteNumeroTx issues the next REM- folio under the series row lock.
// Only an empty series restarts at 1; any other read failure aborts.
func (s *remisionService) siguienteNumeroTx(tx *gorm.DB) (string, error) {
	ultima, err := s.repo.UltimaTx(tx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return siguienteFolio("", folioPrefijoRemision), nil
	}
	if err != nil {
		return "", err
	}
	return siguienteFolio(ultima.Numero, folioPrefijoRemision), nil
}

func (s *remisionService) MarcarFacturada(ctx context.Context, id uuid.UUID, usuario string) (*dto.RemisionResponse, error) {
	var remision *model.Remision

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		remision, err = s.repo.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NoEncontrado("remisión " + id.String())
			}
			return err
		}
		if remision.Facturada {
			return &apierror.ConflictoError{Detalle: "la remisión " + remision.Numero + " ya está facturada"}
		}

		for i := range remision.Detalles {
			d := &remision.Detalles[i]
			if d.Facturada {
				continue
			}
			if err := s.repo.MarcarDetalleFacturadoTx(tx, d.ID); err != nil {
				return err
			}
			if err := s.movimientoRepo.AppendAnotacionTx(tx, d.MovimientoID,
				"Remisión "+remision.Numero+" marcada facturada manualmente"); err != nil {
				return err
			}
			d.Facturada = true
		}

		flipped, err := s.repo.MarcarFacturadaSiCompletaTx(tx, id)
		if err != nil {
			return err
		}
		remision.Facturada = flipped
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("remision_id", id.String()).
		Str("numero", remision.Numero).
		Str("usuario", usuario).
		Msg("remisión marcada facturada manualmente")

	return remisionToResponse(remision), nil
}

func (s *remisionService) Obtener(ctx context.Context, id uuid.UUID) (*dto.RemisionResponse, error) {
	remision, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("remisión " + id.String())
		}
		return nil, err
	}
	return remisionToResponse(remision), nil
}

func (s *remisionService) Listar(ctx context.Context, filter repository.RemisionFilter) (*dto.RemisionListResponse, error) {
	remisiones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RemisionResponse, 0, len(remisiones))
	for i := range remisiones {
		items = append(items, *remisionToResponse(&remisiones[i]))
	}
	return &dto.RemisionListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *remisionService) encolarPDF(ctx context.Context, remisionID uuid.UUID, email string) {
	job := worker.DocumentoJob{
		Tipo:        worker.DocumentoRemision,
		DocumentoID: remisionID.String(),
		Email:       email,
	}
	if err := s.dispatcher.EncolarDocumento(ctx, job); err != nil {
		log.Error().Err(err).Str("remision_id", remisionID.String()).
			Msg("no se pudo encolar el PDF de la remisión")
	}
}

func remisionToResponse(r *model.Remision) *dto.RemisionResponse {
	resp := &dto.RemisionResponse{
		ID:            r.ID.String(),
		Numero:        r.Numero,
		Facturada:     r.Facturada,
		TotalCordoba:  r.TotalCordoba,
		TotalDolar:    r.TotalDolar,
		TasaCambio:    r.TasaCambio,
		Observaciones: r.Observaciones,
		Usuario:       r.Usuario,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.Cliente != nil {
		resp.Cliente = &r.Cliente.Nombre
	}
	for i := range r.Detalles {
		d := &r.Detalles[i]
		linea := dto.RemisionLineaResponse{
			ID:            d.ID.String(),
			ArticuloID:    d.ArticuloID.String(),
			MovimientoID:  d.MovimientoID.String(),
			Cantidad:      d.Cantidad,
			PrecioCordoba: d.PrecioCordoba,
			PrecioDolar:   d.PrecioDolar,
			Facturada:     d.Facturada,
		}
		if d.Articulo != nil {
			linea.NumeroParte = d.Articulo.NumeroParte
		}
		resp.Lineas = append(resp.Lineas, linea)
	}
	return resp
}

// parseOptionalUUID converts a nullable string field to *uuid.UUID.
func parseOptionalUUID(s *string, campo string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, &apierror.ValidacionError{Detalle: campo + " inválido"}
	}
	return &id, nil
}
