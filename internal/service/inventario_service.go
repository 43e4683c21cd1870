package service

import (
	"context"
	"errors"
	"time"

	"ayher/internal/apierror"
	"ayher/internal/dto"
	"ayher/internal/model"
	"ayher/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AjusteLinea is one stock adjustment request inside a document transaction.
// Cantidad is always positive; the direction comes from the movement type.
type AjusteLinea struct {
	ArticuloID    uuid.UUID
	Tipo          string // canonical movement-type name
	Cantidad      int
	PrecioCordoba *decimal.Decimal
	PrecioDolar   *decimal.Decimal
	TasaCambio    *decimal.Decimal
	Anotacion     string
}

// InventarioService is the single authority over stock. Every stock-affecting
// workflow funnels through AjustarUnoTx/AjustarLoteTx inside the caller's
// transaction, which keeps the invariant: stock_actual always equals the
// signed ledger sum, and the movement row and the stock increment commit or
// roll back together.
type InventarioService interface {
	// AjustarUnoTx validates the movement type, enforces stock sufficiency on
	// outbound kinds, inserts the ledger entry and applies the relative stock
	// increment. Must run inside the caller's transaction.
	AjustarUnoTx(tx *gorm.DB, linea AjusteLinea, usuario string) (*model.Movimiento, error)
	// AjustarLoteTx applies a batch of adjustments: every line is validated
	// first, the ledger rows go in as one bulk insert and each distinct
	// artículo gets a single aggregated stock update. The net effect is the
	// same as applying the lines one by one; the first failure aborts before
	// anything is written.
	AjustarLoteTx(tx *gorm.DB, lineas []AjusteLinea, usuario string) ([]*model.Movimiento, error)

	AjusteManual(ctx context.Context, req dto.AjusteInventarioRequest, usuario string) (*dto.MovimientoResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
	AuditarStock(ctx context.Context, articuloID uuid.UUID) (*dto.AuditoriaStockResponse, error)
}

type inventarioService struct {
	articuloRepo   repository.ArticuloRepository
	movimientoRepo repository.MovimientoRepository
	registro       *TipoRegistry
}

func NewInventarioService(
	articuloRepo repository.ArticuloRepository,
	movimientoRepo repository.MovimientoRepository,
	registro *TipoRegistry,
) InventarioService {
	return &inventarioService{
		articuloRepo:   articuloRepo,
		movimientoRepo: movimientoRepo,
		registro:       registro,
	}
}

func (s *inventarioService) AjustarUnoTx(tx *gorm.DB, linea AjusteLinea, usuario string) (*model.Movimiento, error) {
	if linea.Cantidad <= 0 {
		return nil, &apierror.ValidacionError{Detalle: "la cantidad debe ser mayor que cero"}
	}

	tipo, err := s.registro.Resolver(linea.Tipo)
	if err != nil {
		return nil, err
	}

	articulo, err := s.articuloRepo.FindByIDTx(tx, linea.ArticuloID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("articulo " + linea.ArticuloID.String())
		}
		return nil, err
	}

	if tipo.AfectaStock && !tipo.EsEntrada && articulo.StockActual < linea.Cantidad {
		return nil, &apierror.StockInsuficienteError{
			Articulo:   articulo.NumeroParte,
			Disponible: articulo.StockActual,
			Solicitado: linea.Cantidad,
		}
	}

	mov := &model.Movimiento{
		ArticuloID:       linea.ArticuloID,
		TipoMovimientoID: tipo.ID,
		Cantidad:         linea.Cantidad,
		PrecioCordoba:    linea.PrecioCordoba,
		PrecioDolar:      linea.PrecioDolar,
		TasaCambio:       linea.TasaCambio,
		Anotacion:        linea.Anotacion,
		Usuario:          usuario,
	}
	if err := s.movimientoRepo.CreateTx(tx, mov); err != nil {
		return nil, err
	}

	if tipo.AfectaStock {
		delta := linea.Cantidad
		if !tipo.EsEntrada {
			delta = -delta
		}
		if err := s.articuloRepo.UpdateStockTx(tx, linea.ArticuloID, delta); err != nil {
			return nil, err
		}
	}
	return mov, nil
}

func (s *inventarioService) AjustarLoteTx(tx *gorm.DB, lineas []AjusteLinea, usuario string) ([]*model.Movimiento, error) {
	movs := make([]*model.Movimiento, 0, len(lineas))
	proyectado := map[uuid.UUID]int{}
	numeroParte := map[uuid.UUID]string{}
	deltas := map[uuid.UUID]int{}
	orden := make([]uuid.UUID, 0, len(lineas))

	for _, linea := range lineas {
		if linea.Cantidad <= 0 {
			return nil, &apierror.ValidacionError{Detalle: "la cantidad debe ser mayor que cero"}
		}
		tipo, err := s.registro.Resolver(linea.Tipo)
		if err != nil {
			return nil, err
		}

		if _, visto := proyectado[linea.ArticuloID]; !visto {
			articulo, err := s.articuloRepo.FindByIDTx(tx, linea.ArticuloID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apierror.NoEncontrado("articulo " + linea.ArticuloID.String())
				}
				return nil, err
			}
			proyectado[linea.ArticuloID] = articulo.StockActual
			numeroParte[linea.ArticuloID] = articulo.NumeroParte
			orden = append(orden, linea.ArticuloID)
		}

		// Sufficiency runs against the projected stock, so a line can consume
		// what an earlier line of the same batch brought in.
		if tipo.AfectaStock {
			delta := linea.Cantidad
			if !tipo.EsEntrada {
				if proyectado[linea.ArticuloID] < linea.Cantidad {
					return nil, &apierror.StockInsuficienteError{
						Articulo:   numeroParte[linea.ArticuloID],
						Disponible: proyectado[linea.ArticuloID],
						Solicitado: linea.Cantidad,
					}
				}
				delta = -delta
			}
			proyectado[linea.ArticuloID] += delta
			deltas[linea.ArticuloID] += delta
		}

		movs = append(movs, &model.Movimiento{
			ArticuloID:       linea.ArticuloID,
			TipoMovimientoID: tipo.ID,
			Cantidad:         linea.Cantidad,
			PrecioCordoba:    linea.PrecioCordoba,
			PrecioDolar:      linea.PrecioDolar,
			TasaCambio:       linea.TasaCambio,
			Anotacion:        linea.Anotacion,
			Usuario:          usuario,
		})
	}

	if err := s.movimientoRepo.CreateLoteTx(tx, movs); err != nil {
		return nil, err
	}
	for _, id := range orden {
		if delta := deltas[id]; delta != 0 {
			if err := s.articuloRepo.UpdateStockTx(tx, id, delta); err != nil {
				return nil, err
			}
		}
	}
	return movs, nil
}

// AjusteManual records an operator stock correction. A positive cantidad uses
// the Ajuste de Inventario kind (inbound); a negative one books a Salida so
// the ledger direction stays on the type and Cantidad stays positive.
func (s *inventarioService) AjusteManual(ctx context.Context, req dto.AjusteInventarioRequest, usuario string) (*dto.MovimientoResponse, error) {
	if req.Cantidad == 0 {
		return nil, &apierror.ValidacionError{Detalle: "la cantidad del ajuste no puede ser cero"}
	}
	articuloID, err := uuid.Parse(req.ArticuloID)
	if err != nil {
		return nil, &apierror.ValidacionError{Detalle: "articulo_id inválido"}
	}

	linea := AjusteLinea{
		ArticuloID: articuloID,
		Tipo:       model.TipoAjusteInventario,
		Cantidad:   req.Cantidad,
		Anotacion:  "Ajuste manual: " + req.Motivo,
	}
	if req.Cantidad < 0 {
		linea.Tipo = model.TipoSalida
		linea.Cantidad = -req.Cantidad
	}

	var mov *model.Movimiento
	err = runTx(ctx, s.articuloRepo.DB(), func(tx *gorm.DB) error {
		var txErr error
		mov, txErr = s.AjustarUnoTx(tx, linea, usuario)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("articulo_id", req.ArticuloID).
		Int("cantidad", req.Cantidad).
		Str("usuario", usuario).
		Msg("ajuste manual de inventario registrado")

	tipo, _ := s.registro.Resolver(linea.Tipo)
	return movimientoToResponse(mov, tipo), nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	repoFilter := repository.MovimientoFilter{
		Tipo:  filter.Tipo,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	if filter.ArticuloID != "" {
		id, err := uuid.Parse(filter.ArticuloID)
		if err != nil {
			return nil, &apierror.ValidacionError{Detalle: "articulo_id inválido"}
		}
		repoFilter.ArticuloID = &id
	}

	movs, total, err := s.movimientoRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovimientoResponse, 0, len(movs))
	for i := range movs {
		m := &movs[i]
		item := dto.MovimientoResponse{
			ID:            m.ID.String(),
			ArticuloID:    m.ArticuloID.String(),
			Cantidad:      m.Cantidad,
			PrecioCordoba: m.PrecioCordoba,
			PrecioDolar:   m.PrecioDolar,
			TasaCambio:    m.TasaCambio,
			Anotacion:     m.Anotacion,
			Usuario:       m.Usuario,
			CreatedAt:     m.CreatedAt.Format(time.RFC3339),
		}
		if m.TipoMovimiento != nil {
			item.Tipo = m.TipoMovimiento.Nombre
			item.EsEntrada = m.TipoMovimiento.EsEntrada
		}
		if m.Articulo != nil {
			item.NumeroParte = m.Articulo.NumeroParte
		}
		items = append(items, item)
	}
	return &dto.MovimientoListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// AuditarStock cross-checks the materialized quantity against the ledger sum.
func (s *inventarioService) AuditarStock(ctx context.Context, articuloID uuid.UUID) (*dto.AuditoriaStockResponse, error) {
	articulo, err := s.articuloRepo.FindByID(ctx, articuloID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("articulo " + articuloID.String())
		}
		return nil, err
	}
	saldo, err := s.movimientoRepo.SaldoPorArticulo(ctx, articuloID)
	if err != nil {
		return nil, err
	}
	if saldo != articulo.StockActual {
		log.Error().
			Str("articulo_id", articuloID.String()).
			Int("stock_actual", articulo.StockActual).
			Int("saldo_ledger", saldo).
			Msg("stock materializado inconsistente con el ledger")
	}
	return &dto.AuditoriaStockResponse{
		ArticuloID:  articulo.ID.String(),
		NumeroParte: articulo.NumeroParte,
		StockActual: articulo.StockActual,
		SaldoLedger: saldo,
		Consistente: saldo == articulo.StockActual,
	}, nil
}

func movimientoToResponse(m *model.Movimiento, tipo model.TipoMovimiento) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:            m.ID.String(),
		ArticuloID:    m.ArticuloID.String(),
		Tipo:          tipo.Nombre,
		EsEntrada:     tipo.EsEntrada,
		Cantidad:      m.Cantidad,
		PrecioCordoba: m.PrecioCordoba,
		PrecioDolar:   m.PrecioDolar,
		TasaCambio:    m.TasaCambio,
		Anotacion:     m.Anotacion,
		Usuario:       m.Usuario,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}
