package repository

import (
	"context"

	"ayher/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catálogos simples: marcas, proveedores y clientes comparten el mismo CRUD.

type MarcaRepository interface {
	Create(ctx context.Context, m *model.Marca) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Marca, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Marca, error)
	Update(ctx context.Context, m *model.Marca) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type marcaRepo struct{ db *gorm.DB }

func NewMarcaRepository(db *gorm.DB) MarcaRepository { return &marcaRepo{db: db} }

func (r *marcaRepo) Create(ctx context.Context, m *model.Marca) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *marcaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Marca, error) {
	var m model.Marca
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *marcaRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Marca, error) {
	q := r.db.WithContext(ctx)
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	var marcas []model.Marca
	err := q.Order("nombre ASC").Find(&marcas).Error
	return marcas, err
}

func (r *marcaRepo) Update(ctx context.Context, m *model.Marca) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *marcaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Marca{}).Where("id = ?", id).Update("activo", false).Error
}

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Proveedor, error)
	Update(ctx context.Context, p *model.Proveedor) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *proveedorRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Proveedor, error) {
	q := r.db.WithContext(ctx)
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	var proveedores []model.Proveedor
	err := q.Order("razon_social ASC").Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *proveedorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("id = ?", id).Update("activo", false).Error
}

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context, nombre string, incluirInactivos bool) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, nombre string, incluirInactivos bool) ([]model.Cliente, error) {
	q := r.db.WithContext(ctx)
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	if nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+nombre+"%")
	}
	var clientes []model.Cliente
	err := q.Order("nombre ASC").Limit(200).Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("activo", false).Error
}
