package repository

import (
	"context"
	"time"

	"ayher/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DevolucionFilter defines filters for listing returns (both directions).
type DevolucionFilter struct {
	Desde *time.Time
	Hasta *time.Time
	Page  int
	Limit int
}

type DevolucionRepository interface {
	CreateVentaTx(tx *gorm.DB, d *model.DevolucionVenta) error
	CreateCompraTx(tx *gorm.DB, d *model.DevolucionCompra) error
	FindVentaByID(ctx context.Context, id uuid.UUID) (*model.DevolucionVenta, error)
	FindCompraByID(ctx context.Context, id uuid.UUID) (*model.DevolucionCompra, error)
	ListVenta(ctx context.Context, filter DevolucionFilter) ([]model.DevolucionVenta, int64, error)
	ListCompra(ctx context.Context, filter DevolucionFilter) ([]model.DevolucionCompra, int64, error)
	DB() *gorm.DB
}

type devolucionRepo struct{ db *gorm.DB }

func NewDevolucionRepository(db *gorm.DB) DevolucionRepository { return &devolucionRepo{db: db} }

func (r *devolucionRepo) CreateVentaTx(tx *gorm.DB, d *model.DevolucionVenta) error {
	return tx.Create(d).Error
}

func (r *devolucionRepo) CreateCompraTx(tx *gorm.DB, d *model.DevolucionCompra) error {
	return tx.Create(d).Error
}

func (r *devolucionRepo) FindVentaByID(ctx context.Context, id uuid.UUID) (*model.DevolucionVenta, error) {
	var d model.DevolucionVenta
	err := r.db.WithContext(ctx).
		Preload("Venta").
		Preload("Detalles").
		Preload("Detalles.Articulo").
		First(&d, id).Error
	return &d, err
}

func (r *devolucionRepo) FindCompraByID(ctx context.Context, id uuid.UUID) (*model.DevolucionCompra, error) {
	var d model.DevolucionCompra
	err := r.db.WithContext(ctx).
		Preload("Compra").
		Preload("Detalles").
		Preload("Detalles.Articulo").
		First(&d, id).Error
	return &d, err
}

func (r *devolucionRepo) ListVenta(ctx context.Context, filter DevolucionFilter) ([]model.DevolucionVenta, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.DevolucionVenta{}).Preload("Venta")
	q = aplicarRangoFechas(q, filter.Desde, filter.Hasta)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var devoluciones []model.DevolucionVenta
	err := q.Order("created_at DESC").
		Offset(pageOffset(filter.Page, filter.Limit)).
		Limit(pageLimit(filter.Limit)).
		Find(&devoluciones).Error
	return devoluciones, total, err
}

func (r *devolucionRepo) ListCompra(ctx context.Context, filter DevolucionFilter) ([]model.DevolucionCompra, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.DevolucionCompra{}).Preload("Compra")
	q = aplicarRangoFechas(q, filter.Desde, filter.Hasta)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var devoluciones []model.DevolucionCompra
	err := q.Order("created_at DESC").
		Offset(pageOffset(filter.Page, filter.Limit)).
		Limit(pageLimit(filter.Limit)).
		Find(&devoluciones).Error
	return devoluciones, total, err
}

func (r *devolucionRepo) DB() *gorm.DB { return r.db }

func aplicarRangoFechas(q *gorm.DB, desde, hasta *time.Time) *gorm.DB {
	if desde != nil {
		q = q.Where("created_at >= ?", *desde)
	}
	if hasta != nil {
		q = q.Where("created_at <= ?", *hasta)
	}
	return q
}
