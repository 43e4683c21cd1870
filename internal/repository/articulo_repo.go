package repository

import (
	"context"

	"ayher/internal/dto"
	"ayher/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticuloRepository defines the data access contract for artículos.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ArticuloRepository interface {
	Create(ctx context.Context, a *model.Articulo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Articulo, error)
	FindByNumeroParte(ctx context.Context, numeroParte string) (*model.Articulo, error)
	List(ctx context.Context, filter dto.ArticuloFilter) ([]model.Articulo, int64, error)
	Update(ctx context.Context, a *model.Articulo) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDTx takes a SELECT … FOR UPDATE row lock so concurrent stock
	// checks against the same artículo serialize on the row.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Articulo, error)
	// UpdateStockTx applies a relative increment, never an absolute value.
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error
	// UpdateCostosTx refreshes the catalog cost columns from the latest
	// purchased unit cost.
	UpdateCostosTx(tx *gorm.DB, id uuid.UUID, costoCordoba, costoDolar decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type articuloRepo struct{ db *gorm.DB }

func NewArticuloRepository(db *gorm.DB) ArticuloRepository { return &articuloRepo{db: db} }

func (r *articuloRepo) Create(ctx context.Context, a *model.Articulo) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *articuloRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Articulo, error) {
	var a model.Articulo
	err := r.db.WithContext(ctx).Preload("Marca").First(&a, id).Error
	return &a, err
}

func (r *articuloRepo) FindByNumeroParte(ctx context.Context, numeroParte string) (*model.Articulo, error) {
	var a model.Articulo
	err := r.db.WithContext(ctx).Where("numero_parte = ? AND activo = true", numeroParte).First(&a).Error
	return &a, err
}

func (r *articuloRepo) List(ctx context.Context, filter dto.ArticuloFilter) ([]model.Articulo, int64, error) {
	var articulos []model.Articulo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Articulo{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}
	if filter.NumeroParte != "" {
		q = q.Where("numero_parte = ?", filter.NumeroParte)
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.MarcaID != "" {
		q = q.Where("marca_id = ?", filter.MarcaID)
	}
	if filter.BajoMinimo {
		q = q.Where("stock_actual <= stock_minimo")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Marca").Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&articulos).Error
	return articulos, total, err
}

func (r *articuloRepo) Update(ctx context.Context, a *model.Articulo) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *articuloRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Articulo{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *articuloRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Articulo{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *articuloRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Articulo, error) {
	var a model.Articulo
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, id).Error
	return &a, err
}

func (r *articuloRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Articulo{}).Where("id = ?", id).
		Update("stock_actual", gorm.Expr("stock_actual + ?", delta)).Error
}

func (r *articuloRepo) UpdateCostosTx(tx *gorm.DB, id uuid.UUID, costoCordoba, costoDolar decimal.Decimal) error {
	return tx.Model(&model.Articulo{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"costo_cordoba": costoCordoba,
			"costo_dolar":   costoDolar,
		}).Error
}

func (r *articuloRepo) DB() *gorm.DB { return r.db }
