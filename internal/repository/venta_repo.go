package repository

import (
	"context"
	"time"

	"ayher/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VentaFilter defines filters for listing sales.
type VentaFilter struct {
	ClienteID *uuid.UUID
	Desde     *time.Time
	Hasta     *time.Time
	Page      int
	Limit     int
}

type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	// UltimaTx reads the most recent sale under FOR UPDATE so the numbering
	// service can serialize concurrent folio assignment on the series.
	UltimaTx(tx *gorm.DB) (*model.Venta, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	FindByNumero(ctx context.Context, numero string) (*model.Venta, error)
	List(ctx context.Context, filter VentaFilter) ([]model.Venta, int64, error)
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) UltimaTx(tx *gorm.DB) (*model.Venta, error) {
	var v model.Venta
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("created_at DESC").First(&v).Error
	return &v, err
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Detalles").
		Preload("Detalles.Articulo").
		First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) FindByNumero(ctx context.Context, numero string) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Where("numero = ?", numero).First(&v).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, filter VentaFilter) ([]model.Venta, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Venta{}).Preload("Cliente")
	if filter.ClienteID != nil {
		q = q.Where("cliente_id = ?", *filter.ClienteID)
	}
	if filter.Desde != nil {
		q = q.Where("created_at >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("created_at <= ?", *filter.Hasta)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ventas []model.Venta
	err := q.Order("created_at DESC").
		Offset(pageOffset(filter.Page, filter.Limit)).
		Limit(pageLimit(filter.Limit)).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) DB() *gorm.DB { return r.db }
