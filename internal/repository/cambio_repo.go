package repository

import (
	"context"
	"time"

	"ayher/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CambioRepository interface {
	CreateTx(tx *gorm.DB, c *model.Cambio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cambio, error)
	List(ctx context.Context, desde, hasta *time.Time, page, limit int) ([]model.Cambio, int64, error)
	DB() *gorm.DB
}

type cambioRepo struct{ db *gorm.DB }

func NewCambioRepository(db *gorm.DB) CambioRepository { return &cambioRepo{db: db} }

func (r *cambioRepo) CreateTx(tx *gorm.DB, c *model.Cambio) error {
	return tx.Create(c).Error
}

func (r *cambioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cambio, error) {
	var c model.Cambio
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Preload("Detalles.ArticuloSalida").
		Preload("Detalles.ArticuloEntrada").
		First(&c, id).Error
	return &c, err
}

func (r *cambioRepo) List(ctx context.Context, desde, hasta *time.Time, page, limit int) ([]model.Cambio, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Cambio{})
	q = aplicarRangoFechas(q, desde, hasta)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cambios []model.Cambio
	err := q.Order("created_at DESC").
		Offset(pageOffset(page, limit)).
		Limit(pageLimit(limit)).
		Find(&cambios).Error
	return cambios, total, err
}

func (r *cambioRepo) DB() *gorm.DB { return r.db }
