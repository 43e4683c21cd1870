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

// DevolucionService handles returns in both directions: customer → warehouse
// (stock re-enters) and warehouse → supplier (stock leaves, with the same
// sufficiency check as any other outbound document).
type DevolucionService interface {
	RegistrarVenta(ctx context.Context, req dto.RegistrarDevolucionVentaRequest, usuario string) (*dto.DevolucionResponse, error)
	RegistrarCompra(ctx context.Context, req dto.RegistrarDevolucionCompraRequest, usuario string) (*dto.DevolucionResponse, error)
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.DevolucionResponse, error)
	ObtenerCompra(ctx context.Context, id uuid.UUID) (*dto.DevolucionResponse, error)
	ListarVenta(ctx context.Context, filter repository.DevolucionFilter) (*dto.DevolucionListResponse, error)
	ListarCompra(ctx context.Context, filter repository.DevolucionFilter) (*dto.DevolucionListResponse, error)
}

type devolucionService struct {
	repo       repository.DevolucionRepository
	ventaRepo  repository.VentaRepository
	compraRepo repository.CompraRepository
	inventario InventarioService
	tasas      TasaService
}

func NewDevolucionService(
	repo repository.DevolucionRepository,
	ventaRepo repository.VentaRepository,
	compraRepo repository.CompraRepository,
	inventario InventarioService,
	tasas TasaService,
) DevolucionService {
	return &devolucionService{
		repo:       repo,
		ventaRepo:  ventaRepo,
		compraRepo: compraRepo,
		inventario: inventario,
		tasas:      tasas,
	}
}

func (s *devolucionService) RegistrarVenta(ctx context.Context, req dto.RegistrarDevolucionVentaRequest, usuario string) (*dto.DevolucionResponse, error) {
	tasa, err := s.tasas.Vigente(ctx)
	if err != nil {
		return nil, err
	}
	ventaID, err := parseOptionalUUID(req.VentaID, "venta_id")
	if err != nil {
		return nil, err
	}
	if ventaID != nil {
		if _, err := s.ventaRepo.FindByID(ctx, *ventaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NoEncontrado("venta " + ventaID.String())
			}
			return nil, err
		}
	}

	devolucion := &model.DevolucionVenta{
		VentaID:    ventaID,
		Motivo:     req.Motivo,
		TasaCambio: tasa,
		Usuario:    usuario,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		totalCordoba := decimal.Zero
		for _, l := range req.Lineas {
			articuloID, precioCordoba, precioDolar, err := resolverLineaDevolucion(l, tasa)
			if err != nil {
				return err
			}
			tasaSnap := tasa
			if _, err := s.inventario.AjustarUnoTx(tx, AjusteLinea{
				ArticuloID:    articuloID,
				Tipo:          model.TipoDevolucionCliente,
				Cantidad:      l.Cantidad,
				PrecioCordoba: &precioCordoba,
				PrecioDolar:   &precioDolar,
				TasaCambio:    &tasaSnap,
				Anotacion:     "Devolución de cliente: " + req.Motivo,
			}, usuario); err != nil {
				return err
			}
			devolucion.Detalles = append(devolucion.Detalles, model.DevolucionVentaDetalle{
				ArticuloID:    articuloID,
				Cantidad:      l.Cantidad,
				PrecioCordoba: precioCordoba,
				PrecioDolar:   precioDolar,
			})
			totalCordoba = totalCordoba.Add(precioCordoba.Mul(decimal.NewFromInt(int64(l.Cantidad))))
		}
		devolucion.TotalCordoba = moneda.TotalCordoba(totalCordoba)
		devolucion.TotalDolar = moneda.TotalDolar(totalCordoba, tasa)
		return s.repo.CreateVentaTx(tx, devolucion)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("devolucion_id", devolucion.ID.String()).
		Int("lineas", len(devolucion.Detalles)).
		Str("usuario", usuario).
		Msg("devolución de venta registrada")

	return devolucionVentaToResponse(devolucion), nil
}

func (s *devolucionService) RegistrarCompra(ctx context.Context, req dto.RegistrarDevolucionCompraRequest, usuario string) (*dto.DevolucionResponse, error) {
	tasa, err := s.tasas.Vigente(ctx)
	if err != nil {
		return nil, err
	}
	compraID, err := parseOptionalUUID(req.CompraID, "compra_id")
	if err != nil {
		return nil, err
	}
	proveedorID, err := parseOptionalUUID(req.ProveedorID, "proveedor_id")
	if err != nil {
		return nil, err
	}
	if compraID != nil {
		compra, err := s.compraRepo.FindByID(ctx, *compraID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NoEncontrado("compra " + compraID.String())
			}
			return nil, err
		}
		if proveedorID == nil {
			proveedorID = compra.ProveedorID
		}
	}

	devolucion := &model.DevolucionCompra{
		CompraID:    compraID,
		ProveedorID: proveedorID,
		Motivo:      req.Motivo,
		TasaCambio:  tasa,
		Usuario:     usuario,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		totalCordoba := decimal.Zero
		for _, l := range req.Lineas {
			articuloID, costoCordoba, costoDolar, err := resolverLineaDevolucion(l, tasa)
			if err != nil {
				return err
			}
			tasaSnap := tasa
			if _, err := s.inventario.AjustarUnoTx(tx, AjusteLinea{
				ArticuloID:    articuloID,
				Tipo:          model.TipoDevolucionProveedor,
				Cantidad:      l.Cantidad,
				PrecioCordoba: &costoCordoba,
				PrecioDolar:   &costoDolar,
				TasaCambio:    &tasaSnap,
				Anotacion:     "Devolución a proveedor: " + req.Motivo,
			}, usuario); err != nil {
				return err
			}
			devolucion.Detalles = append(devolucion.Detalles, model.DevolucionCompraDetalle{
				ArticuloID:   articuloID,
				Cantidad:     l.Cantidad,
				CostoCordoba: costoCordoba,
				CostoDolar:   costoDolar,
			})
			totalCordoba = totalCordoba.Add(costoCordoba.Mul(decimal.NewFromInt(int64(l.Cantidad))))
		}
		devolucion.TotalCordoba = moneda.TotalCordoba(totalCordoba)
		devolucion.TotalDolar = moneda.TotalDolar(totalCordoba, tasa)
		return s.repo.CreateCompraTx(tx, devolucion)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("devolucion_id", devolucion.ID.String()).
		Int("lineas", len(devolucion.Detalles)).
		Str("usuario", usuario).
		Msg("devolución de compra registrada")

	return devolucionCompraToResponse(devolucion), nil
}

func resolverLineaDevolucion(l dto.DevolucionLineaRequest, tasa decimal.Decimal) (uuid.UUID, decimal.Decimal, decimal.Decimal, error) {
	articuloID, err := uuid.Parse(l.ArticuloID)
	if err != nil {
		return uuid.Nil, decimal.Zero, decimal.Zero,
			&apierror.ValidacionError{Detalle: "articulo_id inválido: " + l.ArticuloID}
	}
	if !l.PrecioCordoba.IsPositive() {
		return uuid.Nil, decimal.Zero, decimal.Zero,
			&apierror.ValidacionError{Detalle: "el precio unitario debe ser mayor que cero"}
	}
	precioCordoba := l.PrecioCordoba.Round(moneda.PrecisionUnitaria)
	return articuloID, precioCordoba, moneda.ADolar(precioCordoba, tasa), nil
}

func (s *devolucionService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.DevolucionResponse, error) {
	d, err := s.repo.FindVentaByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("devolución de venta " + id.String())
		}
		return nil, err
	}
	return devolucionVentaToResponse(d), nil
}

func (s *devolucionService) ObtenerCompra(ctx context.Context, id uuid.UUID) (*dto.DevolucionResponse, error) {
	d, err := s.repo.FindCompraByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("devolución de compra " + id.String())
		}
		return nil, err
	}
	return devolucionCompraToResponse(d), nil
}

func (s *devolucionService) ListarVenta(ctx context.Context, filter repository.DevolucionFilter) (*dto.DevolucionListResponse, error) {
	devoluciones, total, err := s.repo.ListVenta(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DevolucionResponse, 0, len(devoluciones))
	for i := range devoluciones {
		items = append(items, *devolucionVentaToResponse(&devoluciones[i]))
	}
	return &dto.DevolucionListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *devolucionService) ListarCompra(ctx context.Context, filter repository.DevolucionFilter) (*dto.DevolucionListResponse, error) {
	devoluciones, total, err := s.repo.ListCompra(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DevolucionResponse, 0, len(devoluciones))
	for i := range devoluciones {
		items = append(items, *devolucionCompraToResponse(&devoluciones[i]))
	}
	return &dto.DevolucionListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func devolucionVentaToResponse(d *model.DevolucionVenta) *dto.DevolucionResponse {
	resp := &dto.DevolucionResponse{
		ID:           d.ID.String(),
		Motivo:       d.Motivo,
		TotalCordoba: d.TotalCordoba,
		TotalDolar:   d.TotalDolar,
		TasaCambio:   d.TasaCambio,
		Usuario:      d.Usuario,
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
	}
	if d.VentaID != nil {
		id := d.VentaID.String()
		resp.VentaID = &id
	}
	for i := range d.Detalles {
		det := &d.Detalles[i]
		linea := dto.DevolucionLineaResponse{
			ArticuloID:    det.ArticuloID.String(),
			Cantidad:      det.Cantidad,
			PrecioCordoba: det.PrecioCordoba,
			PrecioDolar:   det.PrecioDolar,
		}
		if det.Articulo != nil {
			linea.NumeroParte = det.Articulo.NumeroParte
		}
		resp.Lineas = append(resp.Lineas, linea)
	}
	return resp
}

func devolucionCompraToResponse(d *model.DevolucionCompra) *dto.DevolucionResponse {
	resp := &dto.DevolucionResponse{
		ID:           d.ID.String(),
		Motivo:       d.Motivo,
		TotalCordoba: d.TotalCordoba,
		TotalDolar:   d.TotalDolar,
		TasaCambio:   d.TasaCambio,
		Usuario:      d.Usuario,
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
	}
	if d.CompraID != nil {
		id := d.CompraID.String()
		resp.CompraID = &id
	}
	if d.ProveedorID != nil {
		id := d.ProveedorID.String()
		resp.ProveedorID = &id
	}
	for i := range d.Detalles {
		det := &d.Detalles[i]
		linea := dto.DevolucionLineaResponse{
			ArticuloID:    det.ArticuloID.String(),
			Cantidad:      det.Cantidad,
			PrecioCordoba: det.CostoCordoba,
			PrecioDolar:   det.CostoDolar,
		}
		if det.Articulo != nil {
			linea.NumeroParte = det.Articulo.NumeroParte
		}
		resp.Lineas = append(resp.Lineas, linea)
	}
	return resp
}
