package repository

import (
	"context"
	"time"

	"ayher/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompraFilter defines filters for listing purchases.
type CompraFilter struct {
	ProveedorID *uuid.UUID
	Desde       *time.Time
	Hasta       *time.Time
	Page        int
	Limit       int
}

type CompraRepository interface {
	CreateTx(tx *gorm.DB, c *model.Compra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error)
	List(ctx context.Context, filter CompraFilter) ([]model.Compra, int64, error)
	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) CreateTx(tx *gorm.DB, c *model.Compra) error {
	return tx.Create(c).Error
}

func (r *compraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error) {
	var c model.Compra
	err := r.db.WithContext(ctx).
		Preload("Proveedor").
		Preload("Detalles").
		Preload("Detalles.Articulo").
		First(&c, id).Error
	return &c, err
}

func (r *compraRepo) List(ctx context.Context, filter CompraFilter) ([]model.Compra, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Compra{}).Preload("Proveedor")
	if filter.ProveedorID != nil {
		q = q.Where("proveedor_id = ?", *filter.ProveedorID)
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

	var compras []model.Compra
	err := q.Order("created_at DESC").
		Offset(pageOffset(filter.Page, filter.Limit)).
		Limit(pageLimit(filter.Limit)).
		Find(&compras).Error
	return compras, total, err
}

func (r *compraRepo) DB() *gorm.DB { return r.db }

// Shared pagination clamps for the document repos.
func pageLimit(limit int) int {
	if limit < 1 || limit > 200 {
		return 50
	}
	return limit
}

func pageOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageLimit(limit)
}
