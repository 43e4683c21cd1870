package repository

import (
	"context"
	"time"

	"ayher/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProformaRepository interface {
	CreateTx(tx *gorm.DB, p *model.Proforma) error
	UltimaTx(tx *gorm.DB) (*model.Proforma, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proforma, error)
	List(ctx context.Context, desde, hasta *time.Time, page, limit int) ([]model.Proforma, int64, error)
	DB() *gorm.DB
}

type proformaRepo struct{ db *gorm.DB }

func NewProformaRepository(db *gorm.DB) ProformaRepository { return &proformaRepo{db: db} }

func (r *proformaRepo) CreateTx(tx *gorm.DB, p *model.Proforma) error {
	return tx.Create(p).Error
}

func (r *proformaRepo) UltimaTx(tx *gorm.DB) (*model.Proforma, error) {
	var p model.Proforma
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("created_at DESC").First(&p).Error
	return &p, err
}

func (r *proformaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proforma, error) {
	var p model.Proforma
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Detalles").
		Preload("Detalles.Articulo").
		First(&p, id).Error
	return &p, err
}

func (r *proformaRepo) List(ctx context.Context, desde, hasta *time.Time, page, limit int) ([]model.Proforma, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Proforma{}).Preload("Cliente")
	q = aplicarRangoFechas(q, desde, hasta)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var proformas []model.Proforma
	err := q.Order("created_at DESC").
		Offset(pageOffset(page, limit)).
		Limit(pageLimit(limit)).
		Find(&proformas).Error
	return proformas, total, err
}

func (r *proformaRepo) DB() *gorm.DB { return r.db }
