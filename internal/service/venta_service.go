package service

import (
	"context"
	"errors"
	"strings"
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

type VentaService interface {
	Registrar(ctx context.Context, req dto.RegistrarVentaRequest, usuario string) (*dto.VentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo           repository.VentaRepository
	remisionRepo   repository.RemisionRepository
	movimientoRepo repository.MovimientoRepository
	inventario     InventarioService
	tasas          TasaService
	dispatcher     *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	remisionRepo repository.RemisionRepository,
	movimientoRepo repository.MovimientoRepository,
	inventario InventarioService,
	tasas TasaService,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		repo:           repo,
		remisionRepo:   remisionRepo,
		movimientoRepo: movimientoRepo,
		inventario:     inventario,
		tasas:          tasas,
		dispatcher:     dispatcher,
	}
}

// lineaFusionada is one invoice line after merging request lines that share
// artículo and unit price. CantidadExtra is the portion not covered by a
// delivery note: only that portion decrements stock at invoicing time.
type lineaFusionada struct {
	articuloID        uuid.UUID
	precioCordoba     decimal.Decimal
	precioDolar       decimal.Decimal
	cantidadTotal     int
	cantidadExtra     int
	remisionDetalleID *uuid.UUID
}

// detalleConsumido tracks a delivery-note line covered by this invoice so the
// workflow can mark it and annotate its original outbound movement.
type detalleConsumido struct {
	detalleID    uuid.UUID
	remisionID   uuid.UUID
	movimientoID uuid.UUID
}

// Registrar books a customer invoice. Lines backed by a delivery-note detail
// had their stock effect at shipment and are never decremented again; fresh
// lines decrement now. Lines sharing artículo and unit price collapse into a
// single invoice detail with the quantities summed.
func (s *ventaService) Registrar(ctx context.Context, req dto.RegistrarVentaRequest, usuario string) (*dto.VentaResponse, error) {
	tasa, err := s.tasas.Vigente(ctx)
	if err != nil {
		return nil, err
	}
	clienteID, err := parseOptionalUUID(req.ClienteID, "cliente_id")
	if err != nil {
		return nil, err
	}
	if req.Numero != nil && !folioValido(*req.Numero) {
		return nil, &apierror.ValidacionError{Detalle: "número de factura inválido"}
	}

	venta := &model.Venta{
		ClienteID:     clienteID,
		TasaCambio:    tasa,
		Observaciones: req.Observaciones,
		Usuario:       usuario,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if req.Numero != nil {
			venta.Numero = strings.TrimSpace(*req.Numero)
		} else {
			numero, err := s.siguienteNumeroTx(tx)
			if err != nil {
				return err
			}
			venta.Numero = numero
		}

		fusionadas, consumidos, err := s.resolverLineasTx(tx, req.Lineas, tasa)
		if err != nil {
			return err
		}

		totalCordoba := decimal.Zero
		for _, lf := range fusionadas {
			if lf.cantidadExtra > 0 {
				precioCordoba := lf.precioCordoba
				precioDolar := lf.precioDolar
				tasaSnap := tasa
				if _, err := s.inventario.AjustarUnoTx(tx, AjusteLinea{
					ArticuloID:    lf.articuloID,
					Tipo:          model.TipoSalida,
					Cantidad:      lf.cantidadExtra,
					PrecioCordoba: &precioCordoba,
					PrecioDolar:   &precioDolar,
					TasaCambio:    &tasaSnap,
					Anotacion:     "Venta " + venta.Numero,
				}, usuario); err != nil {
					return err
				}
			}
			venta.Detalles = append(venta.Detalles, model.VentaDetalle{
				ArticuloID:        lf.articuloID,
				RemisionDetalleID: lf.remisionDetalleID,
				Cantidad:          lf.cantidadTotal,
				PrecioCordoba:     lf.precioCordoba,
				PrecioDolar:       lf.precioDolar,
			})
			totalCordoba = totalCordoba.Add(lf.precioCordoba.Mul(decimal.NewFromInt(int64(lf.cantidadTotal))))
		}

		venta.TotalCordoba = moneda.TotalCordoba(totalCordoba)
		venta.TotalDolar = moneda.TotalDolar(totalCordoba, tasa)

		if err := s.repo.CreateTx(tx, venta); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &apierror.ConflictoError{Detalle: "número de factura ya emitido: " + venta.Numero}
			}
			return err
		}

		return s.cerrarDetallesTx(tx, consumidos, venta.Numero)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("numero", venta.Numero).
		Int("lineas", len(venta.Detalles)).
		Str("total_cordoba", venta.TotalCordoba.String()).
		Str("usuario", usuario).
		Msg("venta registrada")

	if req.EnviarEmail != nil && s.dispatcher != nil {
		s.encolarPDF(ctx, venta.ID, *req.EnviarEmail)
	}

	return ventaToResponse(venta), nil
}

// resolverLineasTx validates every request line, locks and verifies the
// referenced delivery-note details, and merges lines by (artículo, precio).
func (s *ventaService) resolverLineasTx(tx *gorm.DB, lineas []dto.VentaLineaRequest, tasa decimal.Decimal) ([]lineaFusionada, []detalleConsumido, error) {
	type claveLinea struct {
		articuloID uuid.UUID
		precio     string
	}

	orden := make([]claveLinea, 0, len(lineas))
	porClave := make(map[claveLinea]*lineaFusionada, len(lineas))
	var consumidos []detalleConsumido

	for _, l := range lineas {
		articuloID, err := uuid.Parse(l.ArticuloID)
		if err != nil {
			return nil, nil, &apierror.ValidacionError{Detalle: "articulo_id inválido: " + l.ArticuloID}
		}
		if !l.PrecioCordoba.IsPositive() {
			return nil, nil, &apierror.ValidacionError{Detalle: "el precio unitario debe ser mayor que cero"}
		}
		precioCordoba := l.PrecioCordoba.Round(moneda.PrecisionUnitaria)

		var remisionDetalleID *uuid.UUID
		if l.RemisionDetalleID != nil {
			detalleID, err := uuid.Parse(*l.RemisionDetalleID)
			if err != nil {
				return nil, nil, &apierror.ValidacionError{Detalle: "remision_detalle_id inválido"}
			}
			detalle, err := s.remisionRepo.FindDetalleTx(tx, detalleID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, nil, apierror.NoEncontrado("detalle de remisión " + detalleID.String())
				}
				return nil, nil, err
			}
			if detalle.Facturada {
				return nil, nil, &apierror.ConflictoError{
					Detalle: "el detalle de remisión " + detalleID.String() + " ya fue facturado",
				}
			}
			if detalle.ArticuloID != articuloID {
				return nil, nil, &apierror.ValidacionError{
					Detalle: "el detalle de remisión no corresponde al artículo indicado",
				}
			}
			if detalle.Cantidad != l.Cantidad {
				return nil, nil, &apierror.ValidacionError{
					Detalle: "una línea remisionada se factura completa: la cantidad debe coincidir con la remisión",
				}
			}
			remisionDetalleID = &detalleID
			consumidos = append(consumidos, detalleConsumido{
				detalleID:    detalleID,
				remisionID:   detalle.RemisionID,
				movimientoID: detalle.MovimientoID,
			})
		}

		clave := claveLinea{articuloID: articuloID, precio: precioCordoba.String()}
		lf, existe := porClave[clave]
		if !existe {
			lf = &lineaFusionada{
				articuloID:    articuloID,
				precioCordoba: precioCordoba,
				precioDolar:   moneda.ADolar(precioCordoba, tasa),
			}
			porClave[clave] = lf
			orden = append(orden, clave)
		}
		lf.cantidadTotal += l.Cantidad
		if remisionDetalleID != nil {
			// A merged line keeps one reference back into the delivery note;
			// every consumed detail is still marked individually below.
			if lf.remisionDetalleID == nil {
				lf.remisionDetalleID = remisionDetalleID
			}
		} else {
			lf.cantidadExtra += l.Cantidad
		}
	}

	fusionadas := make([]lineaFusionada, 0, len(orden))
	for _, clave := range orden {
		fusionadas = append(fusionadas, *porClave[clave])
	}
	return fusionadas, consumidos, nil
}

// cerrarDetallesTx marks consumed delivery-note details as invoiced, appends
// the invoice cross-reference to their original outbound movements, and flips
// each fully covered delivery-note header.
func (s *ventaService) cerrarDetallesTx(tx *gorm.DB, consumidos []detalleConsumido, numeroVenta string) error {
	remisiones := map[uuid.UUID]struct{}{}
	for _, c := range consumidos {
		if err := s.remisionRepo.MarcarDetalleFacturadoTx(tx, c.detalleID); err != nil {
			return err
		}
		if err := s.movimientoRepo.AppendAnotacionTx(tx, c.movimientoID, "Facturada en venta "+numeroVenta); err != nil {
			return err
		}
		remisiones[c.remisionID] = struct{}{}
	}
	for remisionID := range remisiones {
		if _, err := s.remisionRepo.MarcarFacturadaSiCompletaTx(tx, remisionID); err != nil {
			return err
		}
	}
	return nil
}

// siguienteNumeroTx issues the next F folio under the series row lock. Only
// an empty series restarts at 1; any other read failure aborts the document.
func (s *ventaService) siguienteNumeroTx(tx *gorm.DB) (string, error) {
	ultima, err := s.repo.UltimaTx(tx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return siguienteFolio("", folioPrefijoVenta), nil
	}
	if err != nil {
		return "", err
	}
	return siguienteFolio(ultima.Numero, folioPrefijoVenta), nil
}

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("venta " + id.String())
		}
		return nil, err
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	repoFilter := repository.VentaFilter{Page: filter.Page, Limit: filter.Limit}
	if filter.ClienteID != "" {
		id, err := uuid.Parse(filter.ClienteID)
		if err != nil {
			return nil, &apierror.ValidacionError{Detalle: "cliente_id inválido"}
		}
		repoFilter.ClienteID = &id
	}
	var err error
	if repoFilter.Desde, repoFilter.Hasta, err = ParseRangoFechas(filter.Desde, filter.Hasta); err != nil {
		return nil, err
	}

	ventas, total, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *ventaService) encolarPDF(ctx context.Context, ventaID uuid.UUID, email string) {
	job := worker.DocumentoJob{
		Tipo:        worker.DocumentoVenta,
		DocumentoID: ventaID.String(),
		Email:       email,
	}
	if err := s.dispatcher.EncolarDocumento(ctx, job); err != nil {
		log.Error().Err(err).Str("venta_id", ventaID.String()).
			Msg("no se pudo encolar el PDF de la factura")
	}
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:            v.ID.String(),
		Numero:        v.Numero,
		TotalCordoba:  v.TotalCordoba,
		TotalDolar:    v.TotalDolar,
		TasaCambio:    v.TasaCambio,
		Observaciones: v.Observaciones,
		Usuario:       v.Usuario,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
	}
	if v.Cliente != nil {
		resp.Cliente = &v.Cliente.Nombre
	}
	for i := range v.Detalles {
		d := &v.Detalles[i]
		linea := dto.VentaLineaResponse{
			ArticuloID:    d.ArticuloID.String(),
			Cantidad:      d.Cantidad,
			PrecioCordoba: d.PrecioCordoba,
			PrecioDolar:   d.PrecioDolar,
		}
		if d.RemisionDetalleID != nil {
			id := d.RemisionDetalleID.String()
			linea.RemisionDetalleID = &id
		}
		if d.Articulo != nil {
			linea.NumeroParte = d.Articulo.NumeroParte
		}
		resp.Lineas = append(resp.Lineas, linea)
	}
	return resp
}

// ParseRangoFechas converts the YYYY-MM-DD query filters; hasta is extended to
// end of day so the range is inclusive.
func ParseRangoFechas(desde, hasta string) (*time.Time, *time.Time, error) {
	var d, h *time.Time
	if desde != "" {
		t, err := time.Parse("2006-01-02", desde)
		if err != nil {
			return nil, nil, &apierror.ValidacionError{Detalle: "desde inválido, formato esperado YYYY-MM-DD"}
		}
		d = &t
	}
	if hasta != "" {
		t, err := time.Parse("2006-01-02", hasta)
		if err != nil {
			return nil, nil, &apierror.ValidacionError{Detalle: "hasta inválido, formato esperado YYYY-MM-DD"}
		}
		fin := t.Add(24*time.Hour - time.Nanosecond)
		h = &fin
	}
	return d, h, nil
}
