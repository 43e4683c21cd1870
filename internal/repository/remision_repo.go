package repository

import (
	"context"
	"time"

	"ayher/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RemisionFilter defines filters for listing delivery notes.
type RemisionFilter struct {
	ClienteID *uuid.UUID
	Facturada *bool
	Desde     *time.Time
	Hasta     *time.Time
	Page      int
	Limit     int
}

type RemisionRepository interface {
	CreateTx(tx *gorm.DB, rem *model.Remision) error
	UltimaTx(tx *gorm.DB) (*model.Remision, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Remision, error)
	// FindByIDTx locks the header row so two invoices cannot consume the same
	// delivery note concurrently.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Remision, error)
	FindDetalleTx(tx *gorm.DB, id uuid.UUID) (*model.RemisionDetalle, error)
	MarcarDetalleFacturadoTx(tx *gorm.DB, id uuid.UUID) error
	// MarcarFacturadaSiCompletaTx flips the header flag once every detail line
	// has been invoiced. Returns whether the header was flipped.
	MarcarFacturadaSiCompletaTx(tx *gorm.DB, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter RemisionFilter) ([]model.Remision, int64, error)
	DB() *gorm.DB
}

type remisionRepo struct{ db *gorm.DB }

func NewRemisionRepository(db *gorm.DB) RemisionRepository { return &remisionRepo{db: db} }

func (r *remisionRepo) CreateTx(tx *gorm.DB, rem *model.Remision) error {
	return tx.Create(rem).Error
}

func (r *remisionRepo) UltimaTx(tx *gorm.DB) (*model.Remision, error) {
	var rem model.Remision
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("created_at DESC").First(&rem).Error
	return &rem, err
}

func (r *remisionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Remision, error) {
	var rem model.Remision
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Detalles").
		Preload("Detalles.Articulo").
		First(&rem, id).Error
	return &rem, err
}

func (r *remisionRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Remision, error) {
	var rem model.Remision
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Detalles").
		First(&rem, id).Error
	return &rem, err
}

func (r *remisionRepo) FindDetalleTx(tx *gorm.DB, id uuid.UUID) (*model.RemisionDetalle, error) {
	var d model.RemisionDetalle
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&d, id).Error
	return &d, err
}

func (r *remisionRepo) MarcarDetalleFacturadoTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.RemisionDetalle{}).Where("id = ?", id).
		Update("facturada", true).Error
}

func (r *remisionRepo) MarcarFacturadaSiCompletaTx(tx *gorm.DB, id uuid.UUID) (bool, error) {
	var pendientes int64
	err := tx.Model(&model.RemisionDetalle{}).
		Where("remision_id = ? AND facturada = false", id).
		Count(&pendientes).Error
	if err != nil {
		return false, err
	}
	if pendientes > 0 {
		return false, nil
	}
	err = tx.Model(&model.Remision{}).Where("id = ?", id).
		Update("facturada", true).Error
	return err == nil, err
}

func (r *remisionRepo) List(ctx context.Context, filter RemisionFilter) ([]model.Remision, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Remision{}).Preload("Cliente")
	if filter.ClienteID != nil {
		q = q.Where("cliente_id = ?", *filter.ClienteID)
	}
	if filter.Facturada != nil {
		q = q.Where("facturada = ?", *filter.Facturada)
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

	var remisiones []model.Remision
	err := q.Order("created_at DESC").
		Offset(pageOffset(filter.Page, filter.Limit)).
		Limit(pageLimit(filter.Limit)).
		Find(&remisiones).Error
	return remisiones, total, err
}

func (r *remisionRepo) DB() *gorm.DB { return r.db }
