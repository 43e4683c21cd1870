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

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CambioService trades artículos one-for-one with a counterparty. Each detail
// line books two movements sharing the same unit price: Cambio Salida for the
// artículo handed over and Cambio Entrada for the one received.
type CambioService interface {
	Registrar(ctx context.Context, req dto.RegistrarCambioRequest, usuario string) (*dto.CambioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CambioResponse, error)
	Listar(ctx context.Context, desde, hasta *time.Time, page, limit int) (*dto.CambioListResponse, error)
}

type cambioService struct {
	repo       repository.CambioRepository
	inventario InventarioService
	tasas      TasaService
}

func NewCambioService(
	repo repository.CambioRepository,
	inventario InventarioService,
	tasas TasaService,
) CambioService {
	return &cambioService{repo: repo, inventario: inventario, tasas: tasas}
}

func (s *cambioService) Registrar(ctx context.Context, req dto.RegistrarCambioRequest, usuario string) (*dto.CambioResponse, error) {
	tasa, err := s.tasas.Vigente(ctx)
	if err != nil {
		return nil, err
	}
	clienteID, err := parseOptionalUUID(req.ClienteID, "cliente_id")
	if err != nil {
		return nil, err
	}

	cambio := &model.Cambio{
		ClienteID:  clienteID,
		Motivo:     req.Motivo,
		TasaCambio: tasa,
		Usuario:    usuario,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, l := range req.Lineas {
			salidaID, err := uuid.Parse(l.ArticuloSalidaID)
			if err != nil {
				return &apierror.ValidacionError{Detalle: "articulo_salida_id inválido"}
			}
			entradaID, err := uuid.Parse(l.ArticuloEntradaID)
			if err != nil {
				return &apierror.ValidacionError{Detalle: "articulo_entrada_id inválido"}
			}
			if salidaID == entradaID {
				return &apierror.ValidacionError{Detalle: "un cambio requiere dos artículos distintos"}
			}
			if !l.PrecioCordoba.IsPositive() {
				return &apierror.ValidacionError{Detalle: "el precio unitario debe ser mayor que cero"}
			}

			precioCordoba := l.PrecioCordoba.Round(moneda.PrecisionUnitaria)
			precioDolar := moneda.ADolar(precioCordoba, tasa)
			tasaSnap := tasa
			anotacion := "Cambio de mercadería: " + req.Motivo

			// Outbound first: the sufficiency check must see the stock before
			// anything from this exchange enters.
			if _, err := s.inventario.AjustarUnoTx(tx, AjusteLinea{
				ArticuloID:    salidaID,
				Tipo:          model.TipoCambioSalida,
				Cantidad:      l.Cantidad,
				PrecioCordoba: &precioCordoba,
				PrecioDolar:   &precioDolar,
				TasaCambio:    &tasaSnap,
				Anotacion:     anotacion,
			}, usuario); err != nil {
				return err
			}
			if _, err := s.inventario.AjustarUnoTx(tx, AjusteLinea{
				ArticuloID:    entradaID,
				Tipo:          model.TipoCambioEntrada,
				Cantidad:      l.Cantidad,
				PrecioCordoba: &precioCordoba,
				PrecioDolar:   &precioDolar,
				TasaCambio:    &tasaSnap,
				Anotacion:     anotacion,
			}, usuario); err != nil {
				return err
			}

			cambio.Detalles = append(cambio.Detalles, model.CambioDetalle{
				ArticuloSalidaID:  salidaID,
				ArticuloEntradaID: entradaID,
				Cantidad:          l.Cantidad,
				PrecioCordoba:     precioCordoba,
				PrecioDolar:       precioDolar,
			})
		}
		return s.repo.CreateTx(tx, cambio)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("cambio_id", cambio.ID.String()).
		Int("lineas", len(cambio.Detalles)).
		Str("usuario", usuario).
		Msg("cambio de mercadería registrado")

	return cambioToResponse(cambio), nil
}

func (s *cambioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CambioResponse, error) {
	cambio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("cambio " + id.String())
		}
		return nil, err
	}
	return cambioToResponse(cambio), nil
}

func (s *cambioService) Listar(ctx context.Context, desde, hasta *time.Time, page, limit int) (*dto.CambioListResponse, error) {
	cambios, total, err := s.repo.List(ctx, desde, hasta, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CambioResponse, 0, len(cambios))
	for i := range cambios {
		items = append(items, *cambioToResponse(&cambios[i]))
	}
	return &dto.CambioListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func cambioToResponse(c *model.Cambio) *dto.CambioResponse {
	resp := &dto.CambioResponse{
		ID:         c.ID.String(),
		Motivo:     c.Motivo,
		TasaCambio: c.TasaCambio,
		Usuario:    c.Usuario,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
	if c.ClienteID != nil {
		id := c.ClienteID.String()
		resp.ClienteID = &id
	}
	for i := range c.Detalles {
		d := &c.Detalles[i]
		resp.Lineas = append(resp.Lineas, dto.CambioLineaResponse{
			ArticuloSalidaID:  d.ArticuloSalidaID.String(),
			ArticuloEntradaID: d.ArticuloEntradaID.String(),
			Cantidad:          d.Cantidad,
			PrecioCordoba:     d.PrecioCordoba,
			PrecioDolar:       d.PrecioDolar,
		})
	}
	return resp
}
