package repository

import (
	"context"

	"ayher/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimientoFilter defines filters for listing ledger entries.
type MovimientoFilter struct {
	ArticuloID *uuid.UUID
	Tipo       string
	Page       int
	Limit      int
}

// MovimientoRepository is append-only: entries are never updated or deleted,
// except for concatenating to the anotación field when a delivery note is
// invoiced.
type MovimientoRepository interface {
	CreateTx(tx *gorm.DB, m *model.Movimiento) error
	CreateLoteTx(tx *gorm.DB, ms []*model.Movimiento) error
	AppendAnotacionTx(tx *gorm.DB, id uuid.UUID, sufijo string) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Movimiento, error)
	List(ctx context.Context, filter MovimientoFilter) ([]model.Movimiento, int64, error)
	// SaldoPorArticulo computes the signed sum of stock-affecting movements —
	// the value stock_actual must always equal. Used by the audit endpoint.
	SaldoPorArticulo(ctx context.Context, articuloID uuid.UUID) (int, error)
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository {
	return &movimientoRepo{db: db}
}

func (r *movimientoRepo) CreateTx(tx *gorm.DB, m *model.Movimiento) error {
	return tx.Create(m).Error
}

func (r *movimientoRepo) CreateLoteTx(tx *gorm.DB, ms []*model.Movimiento) error {
	if len(ms) == 0 {
		return nil
	}
	return tx.Create(ms).Error
}

// AppendAnotacionTx concatenates, never overwrites: prior annotation text is
// part of the audit history.
func (r *movimientoRepo) AppendAnotacionTx(tx *gorm.DB, id uuid.UUID, sufijo string) error {
	return tx.Model(&model.Movimiento{}).Where("id = ?", id).
		Update("anotacion", gorm.Expr(
			"CASE WHEN anotacion = '' THEN ? ELSE anotacion || ' | ' || ? END", sufijo, sufijo)).Error
}

func (r *movimientoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Movimiento, error) {
	var m model.Movimiento
	err := r.db.WithContext(ctx).Preload("TipoMovimiento").First(&m, id).Error
	return &m, err
}

func (r *movimientoRepo) List(ctx context.Context, filter MovimientoFilter) ([]model.Movimiento, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Movimiento{}).
		Preload("Articulo").Preload("TipoMovimiento")
	if filter.ArticuloID != nil {
		q = q.Where("articulo_id = ?", *filter.ArticuloID)
	}
	if filter.Tipo != "" {
		q = q.Joins("JOIN tipos_movimiento tm ON tm.id = movimientos.tipo_movimiento_id").
			Where("tm.nombre = ?", filter.Tipo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var movimientos []model.Movimiento
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&movimientos).Error
	return movimientos, total, err
}

func (r *movimientoRepo) SaldoPorArticulo(ctx context.Context, articuloID uuid.UUID) (int, error) {
	var saldo int
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(CASE WHEN tm.es_entrada THEN m.cantidad ELSE -m.cantidad END), 0)
		FROM movimientos m
		JOIN tipos_movimiento tm ON tm.id = m.tipo_movimiento_id
		WHERE m.articulo_id = ? AND tm.afecta_stock`, articuloID).Scan(&saldo).Error
	return saldo, err
}
