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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CompraService interface {
	Registrar(ctx context.Context, req dto.RegistrarCompraRequest, usuario string) (*dto.CompraResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error)
	Listar(ctx context.Context, filter repository.CompraFilter) (*dto.CompraListResponse, error)
}

type compraService struct {
	repo         repository.CompraRepository
	articuloRepo repository.ArticuloRepository
	inventario   InventarioService
	tasas        TasaService
}

func NewCompraService(
	repo repository.CompraRepository,
	articuloRepo repository.ArticuloRepository,
	inventario InventarioService,
	tasas TasaService,
) CompraService {
	return &compraService{repo: repo, articuloRepo: articuloRepo, inventario: inventario, tasas: tasas}
}

// Registrar books a supplier purchase atomically: header, detail lines and one
// inbound movement per line commit together or not at all.
func (s *compraService) Registrar(ctx context.Context, req dto.RegistrarCompraRequest, usuario string) (*dto.CompraResponse, error) {
	tasa, err := s.tasas.Vigente(ctx)
	if err != nil {
		return nil, err
	}

	type lineaResuelta struct {
		articuloID   uuid.UUID
		cantidad     int
		costoCordoba decimal.Decimal
		costoDolar   decimal.Decimal
	}

	lineas := make([]lineaResuelta, 0, len(req.Lineas))
	totalCordoba := decimal.Zero
	for _, l := range req.Lineas {
		id, err := uuid.Parse(l.ArticuloID)
		if err != nil {
			return nil, &apierror.ValidacionError{Detalle: "articulo_id inválido: " + l.ArticuloID}
		}
		if !l.CostoCordoba.IsPositive() {
			return nil, &apierror.ValidacionError{Detalle: "el costo unitario debe ser mayor que cero"}
		}
		costo := l.CostoCordoba.Round(moneda.PrecisionUnitaria)
		lineas = append(lineas, lineaResuelta{
			articuloID:   id,
			cantidad:     l.Cantidad,
			costoCordoba: costo,
			costoDolar:   moneda.ADolar(costo, tasa),
		})
		totalCordoba = totalCordoba.Add(costo.Mul(decimal.NewFromInt(int64(l.Cantidad))))
	}

	var proveedorID *uuid.UUID
	if req.ProveedorID != nil {
		id, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, &apierror.ValidacionError{Detalle: "proveedor_id inválido"}
		}
		proveedorID = &id
	}

	compra := &model.Compra{
		NumeroFactura: req.NumeroFactura,
		ProveedorID:   proveedorID,
		TotalCordoba:  moneda.TotalCordoba(totalCordoba),
		TotalDolar:    moneda.TotalDolar(totalCordoba, tasa),
		TasaCambio:    tasa,
		Observaciones: req.Observaciones,
		Usuario:       usuario,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ajustes := make([]AjusteLinea, 0, len(lineas))
		for _, l := range lineas {
			costoCordoba := l.costoCordoba
			costoDolar := l.costoDolar
			tasaSnap := tasa
			ajustes = append(ajustes, AjusteLinea{
				ArticuloID:    l.articuloID,
				Tipo:          model.TipoEntrada,
				Cantidad:      l.cantidad,
				PrecioCordoba: &costoCordoba,
				PrecioDolar:   &costoDolar,
				TasaCambio:    &tasaSnap,
				Anotacion:     anotacionCompra(req.NumeroFactura),
			})
			compra.Detalles = append(compra.Detalles, model.CompraDetalle{
				ArticuloID:   l.articuloID,
				Cantidad:     l.cantidad,
				CostoCordoba: l.costoCordoba,
				CostoDolar:   l.costoDolar,
			})
		}

		if _, err := s.inventario.AjustarLoteTx(tx, ajustes, usuario); err != nil {
			return err
		}
		if err := s.repo.CreateTx(tx, compra); err != nil {
			return err
		}

		// The catalog cost follows the last purchase only when asked to.
		if req.ActualizarCostos {
			for _, l := range lineas {
				if err := s.articuloRepo.UpdateCostosTx(tx, l.articuloID, l.costoCordoba, l.costoDolar); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("compra_id", compra.ID.String()).
		Int("lineas", len(lineas)).
		Str("total_cordoba", compra.TotalCordoba.String()).
		Str("usuario", usuario).
		Msg("compra registrada")

	return s.compraToResponse(compra), nil
}

func anotacionCompra(numeroFactura string) string {
	if numeroFactura == "" {
		return "Compra"
	}
	return "Compra factura " + numeroFactura
}

func (s *compraService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("compra " + id.String())
		}
		return nil, err
	}
	return s.compraToResponse(compra), nil
}

func (s *compraService) Listar(ctx context.Context, filter repository.CompraFilter) (*dto.CompraListResponse, error) {
	compras, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		items = append(items, *s.compraToResponse(&compras[i]))
	}
	return &dto.CompraListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *compraService) compraToResponse(c *model.Compra) *dto.CompraResponse {
	resp := &dto.CompraResponse{
		ID:            c.ID.String(),
		NumeroFactura: c.NumeroFactura,
		TotalCordoba:  c.TotalCordoba,
		TotalDolar:    c.TotalDolar,
		TasaCambio:    c.TasaCambio,
		Observaciones: c.Observaciones,
		Usuario:       c.Usuario,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
	if c.Proveedor != nil {
		resp.Proveedor = &c.Proveedor.RazonSocial
	}
	for i := range c.Detalles {
		d := &c.Detalles[i]
		linea := dto.CompraLineaResponse{
			ArticuloID:   d.ArticuloID.String(),
			Cantidad:     d.Cantidad,
			CostoCordoba: d.CostoCordoba,
			CostoDolar:   d.CostoDolar,
		}
		if d.Articulo != nil {
			linea.NumeroParte = d.Articulo.NumeroParte
		}
		resp.Lineas = append(resp.Lineas, linea)
	}
	return resp
}
