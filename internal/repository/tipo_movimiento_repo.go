package repository

import (
	"context"

	"ayher/internal/model"

	"gorm.io/gorm"
)

// TipoMovimientoRepository reads the immutable movement-type reference data.
type TipoMovimientoRepository interface {
	ListAll(ctx context.Context) ([]model.TipoMovimiento, error)
	FindByNombre(ctx context.Context, nombre string) (*model.TipoMovimiento, error)
	Upsert(ctx context.Context, t *model.TipoMovimiento) error
}

type tipoMovimientoRepo struct{ db *gorm.DB }

func NewTipoMovimientoRepository(db *gorm.DB) TipoMovimientoRepository {
	return &tipoMovimientoRepo{db: db}
}

func (r *tipoMovimientoRepo) ListAll(ctx context.Context) ([]model.TipoMovimiento, error) {
	var tipos []model.TipoMovimiento
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&tipos).Error
	return tipos, err
}

func (r *tipoMovimientoRepo) FindByNombre(ctx context.Context, nombre string) (*model.TipoMovimiento, error) {
	var t model.TipoMovimiento
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&t).Error
	return &t, err
}

// Upsert inserts the seed row if the name is not present (cmd/seedtipos).
func (r *tipoMovimientoRepo) Upsert(ctx context.Context, t *model.TipoMovimiento) error {
	var existing model.TipoMovimiento
	err := r.db.WithContext(ctx).Where("nombre = ?", t.Nombre).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(t).Error
	}
	if err != nil {
		return err
	}
	existing.AfectaStock = t.AfectaStock
	existing.EsEntrada = t.EsEntrada
	return r.db.WithContext(ctx).Save(&existing).Error
}
