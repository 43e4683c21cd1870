package repository

import (
	"context"
	"time"

	"ayher/internal/model"

	"gorm.io/gorm"
)

type TasaCambioRepository interface {
	Create(ctx context.Context, t *model.TasaCambio) error
	// Vigente returns the most recent rate whose fecha is on or before hoy.
	Vigente(ctx context.Context, hoy time.Time) (*model.TasaCambio, error)
	PorFecha(ctx context.Context, fecha time.Time) (*model.TasaCambio, error)
	List(ctx context.Context, desde, hasta *time.Time) ([]model.TasaCambio, error)
}

type tasaCambioRepo struct{ db *gorm.DB }

func NewTasaCambioRepository(db *gorm.DB) TasaCambioRepository {
	return &tasaCambioRepo{db: db}
}

func (r *tasaCambioRepo) Create(ctx context.Context, t *model.TasaCambio) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tasaCambioRepo) Vigente(ctx context.Context, hoy time.Time) (*model.TasaCambio, error) {
	var t model.TasaCambio
	err := r.db.WithContext(ctx).
		Where("fecha <= ?", hoy.Format("2006-01-02")).
		Order("fecha DESC").First(&t).Error
	return &t, err
}

func (r *tasaCambioRepo) PorFecha(ctx context.Context, fecha time.Time) (*model.TasaCambio, error) {
	var t model.TasaCambio
	err := r.db.WithContext(ctx).
		Where("fecha = ?", fecha.Format("2006-01-02")).First(&t).Error
	return &t, err
}

func (r *tasaCambioRepo) List(ctx context.Context, desde, hasta *time.Time) ([]model.TasaCambio, error) {
	q := r.db.WithContext(ctx).Model(&model.TasaCambio{})
	if desde != nil {
		q = q.Where("fecha >= ?", desde.Format("2006-01-02"))
	}
	if hasta != nil {
		q = q.Where("fecha <= ?", hasta.Format("2006-01-02"))
	}
	var tasas []model.TasaCambio
	err := q.Order("fecha DESC").Limit(365).Find(&tasas).Error
	return tasas, err
}
