package service

import (
	"context"
	"errors"

	"ayher/internal/apierror"
	"ayher/internal/dto"
	"ayher/internal/model"
	"ayher/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catálogos simples. No transactions here: each operation is a single row.

// ─── Marcas ─────────────────────────────────────────────────────────────────

type MarcaService interface {
	Crear(ctx context.Context, req dto.MarcaRequest) (*dto.MarcaResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.MarcaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.MarcaRequest) (*dto.MarcaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type marcaService struct {
	repo repository.MarcaRepository
}

func NewMarcaService(repo repository.MarcaRepository) MarcaService {
	return &marcaService{repo: repo}
}

func (s *marcaService) Crear(ctx context.Context, req dto.MarcaRequest) (*dto.MarcaResponse, error) {
	m := &model.Marca{Nombre: req.Nombre, Activo: true}
	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apierror.ConflictoError{Detalle: "ya existe la marca " + req.Nombre}
		}
		return nil, err
	}
	return marcaToResponse(m), nil
}

func (s *marcaService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.MarcaResponse, error) {
	marcas, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MarcaResponse, 0, len(marcas))
	for i := range marcas {
		out = append(out, *marcaToResponse(&marcas[i]))
	}
	return out, nil
}

func (s *marcaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.MarcaRequest) (*dto.MarcaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("marca " + id.String())
		}
		return nil, err
	}
	m.Nombre = req.Nombre
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return marcaToResponse(m), nil
}

func (s *marcaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NoEncontrado("marca " + id.String())
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func marcaToResponse(m *model.Marca) *dto.MarcaResponse {
	return &dto.MarcaResponse{ID: m.ID.String(), Nombre: m.Nombre, Activo: m.Activo}
}

// ─── Proveedores ────────────────────────────────────────────────────────────

type ProveedorService interface {
	Crear(ctx context.Context, req dto.ProveedorRequest) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ProveedorRequest) (*dto.ProveedorResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	p := &model.Proveedor{
		RazonSocial: req.RazonSocial,
		RUC:         req.RUC,
		Telefono:    req.Telefono,
		Email:       req.Email,
		Direccion:   req.Direccion,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apierror.ConflictoError{Detalle: "ya existe un proveedor con ese RUC"}
		}
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		out = append(out, *proveedorToResponse(&proveedores[i]))
	}
	return out, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("proveedor " + id.String())
		}
		return nil, err
	}
	p.RazonSocial = req.RazonSocial
	p.RUC = req.RUC
	p.Telefono = req.Telefono
	p.Email = req.Email
	p.Direccion = req.Direccion
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NoEncontrado("proveedor " + id.String())
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:          p.ID.String(),
		RazonSocial: p.RazonSocial,
		RUC:         p.RUC,
		Telefono:    p.Telefono,
		Email:       p.Email,
		Direccion:   p.Direccion,
		Activo:      p.Activo,
	}
}

// ─── Clientes ───────────────────────────────────────────────────────────────

type ClienteService interface {
	Crear(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, nombre string, incluirInactivos bool) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c := &model.Cliente{
		Nombre:    req.Nombre,
		Cedula:    req.Cedula,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apierror.ConflictoError{Detalle: "ya existe un cliente con esa cédula"}
		}
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, nombre string, incluirInactivos bool) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, nombre, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("cliente " + id.String())
		}
		return nil, err
	}
	c.Nombre = req.Nombre
	c.Cedula = req.Cedula
	c.Telefono = req.Telefono
	c.Email = req.Email
	c.Direccion = req.Direccion
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NoEncontrado("cliente " + id.String())
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID.String(),
		Nombre:    c.Nombre,
		Cedula:    c.Cedula,
		Telefono:  c.Telefono,
		Email:     c.Email,
		Direccion: c.Direccion,
		Activo:    c.Activo,
	}
}
