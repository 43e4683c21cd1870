package service

import (
	"context"
	"strings"
	"time"

	"ayher/internal/dto"
	"ayher/internal/model"
	"ayher/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory stubs backing the unit tests. runTx passes a nil *gorm.DB when
// the repo's DB() is nil, so every Tx method here simply ignores the handle.

// ── Tasa ─────────────────────────────────────────────────────────────────────

var tasaPrueba = decimal.RequireFromString("36.5")

type stubTasaSvc struct {
	tasa decimal.Decimal
	err  error
}

func (s *stubTasaSvc) Registrar(context.Context, dto.RegistrarTasaRequest, string) (*dto.TasaResponse, error) {
	return nil, nil
}

func (s *stubTasaSvc) Vigente(context.Context) (decimal.Decimal, error) {
	if s.err != nil {
		return decimal.Zero, s.err
	}
	return s.tasa, nil
}

func (s *stubTasaSvc) Listar(context.Context, *time.Time, *time.Time) (*dto.TasaListResponse, error) {
	return &dto.TasaListResponse{}, nil
}

var _ TasaService = (*stubTasaSvc)(nil)

// ── Artículos ────────────────────────────────────────────────────────────────

type stubArticuloRepo struct {
	articulos map[uuid.UUID]*model.Articulo
}

func newStubArticuloRepo() *stubArticuloRepo {
	return &stubArticuloRepo{articulos: map[uuid.UUID]*model.Articulo{}}
}

func (r *stubArticuloRepo) Create(_ context.Context, a *model.Articulo) error {
	for _, existente := range r.articulos {
		if existente.NumeroParte == a.NumeroParte {
			return gorm.ErrDuplicatedKey
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.articulos[a.ID] = a
	return nil
}

func (r *stubArticuloRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Articulo, error) {
	a, ok := r.articulos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubArticuloRepo) FindByNumeroParte(_ context.Context, numeroParte string) (*model.Articulo, error) {
	for _, a := range r.articulos {
		if a.NumeroParte == numeroParte && a.Activo {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubArticuloRepo) List(context.Context, dto.ArticuloFilter) ([]model.Articulo, int64, error) {
	out := make([]model.Articulo, 0, len(r.articulos))
	for _, a := range r.articulos {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *stubArticuloRepo) Update(_ context.Context, a *model.Articulo) error {
	r.articulos[a.ID] = a
	return nil
}

func (r *stubArticuloRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	a, ok := r.articulos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Activo = false
	return nil
}

func (r *stubArticuloRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	a, ok := r.articulos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Activo = true
	return nil
}

func (r *stubArticuloRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Articulo, error) {
	a, ok := r.articulos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubArticuloRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	a, ok := r.articulos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.StockActual += delta
	return nil
}

func (r *stubArticuloRepo) UpdateCostosTx(_ *gorm.DB, id uuid.UUID, costoCordoba, costoDolar decimal.Decimal) error {
	a, ok := r.articulos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.CostoCordoba = costoCordoba
	a.CostoDolar = costoDolar
	return nil
}

func (r *stubArticuloRepo) DB() *gorm.DB { return nil }

var _ repository.ArticuloRepository = (*stubArticuloRepo)(nil)

// ── Movimientos ──────────────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []*model.Movimiento
	tipos       map[uuid.UUID]model.TipoMovimiento
}

func newStubMovimientoRepo(registro *TipoRegistry) *stubMovimientoRepo {
	tipos := map[uuid.UUID]model.TipoMovimiento{}
	for _, t := range registro.Listar() {
		tipos[t.ID] = t
	}
	return &stubMovimientoRepo{tipos: tipos}
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.Movimiento) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, m)
	return nil
}

func (r *stubMovimientoRepo) CreateLoteTx(tx *gorm.DB, ms []*model.Movimiento) error {
	for _, m := range ms {
		if err := r.CreateTx(tx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubMovimientoRepo) AppendAnotacionTx(_ *gorm.DB, id uuid.UUID, sufijo string) error {
	for _, m := range r.movimientos {
		if m.ID == id {
			if m.Anotacion == "" {
				m.Anotacion = sufijo
			} else {
				m.Anotacion += " | " + sufijo
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubMovimientoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Movimiento, error) {
	for _, m := range r.movimientos {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMovimientoRepo) List(_ context.Context, filter repository.MovimientoFilter) ([]model.Movimiento, int64, error) {
	out := []model.Movimiento{}
	for _, m := range r.movimientos {
		if filter.ArticuloID != nil && m.ArticuloID != *filter.ArticuloID {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMovimientoRepo) SaldoPorArticulo(_ context.Context, articuloID uuid.UUID) (int, error) {
	saldo := 0
	for _, m := range r.movimientos {
		if m.ArticuloID != articuloID {
			continue
		}
		tipo, ok := r.tipos[m.TipoMovimientoID]
		if !ok || !tipo.AfectaStock {
			continue
		}
		if tipo.EsEntrada {
			saldo += m.Cantidad
		} else {
			saldo -= m.Cantidad
		}
	}
	return saldo, nil
}

// porTipo returns the stored movements of one canonical type name.
func (r *stubMovimientoRepo) porTipo(nombre string) []*model.Movimiento {
	out := []*model.Movimiento{}
	for _, m := range r.movimientos {
		if t, ok := r.tipos[m.TipoMovimientoID]; ok && t.Nombre == nombre {
			out = append(out, m)
		}
	}
	return out
}

var _ repository.MovimientoRepository = (*stubMovimientoRepo)(nil)

// ── Ventas ───────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas    []*model.Venta
	errUltima error // injected fault for the folio read
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	for _, existente := range r.ventas {
		if existente.Numero == v.Numero {
			return gorm.ErrDuplicatedKey
		}
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Detalles {
		if v.Detalles[i].ID == uuid.Nil {
			v.Detalles[i].ID = uuid.New()
		}
		v.Detalles[i].VentaID = v.ID
	}
	r.ventas = append(r.ventas, v)
	return nil
}

func (r *stubVentaRepo) UltimaTx(_ *gorm.DB) (*model.Venta, error) {
	if r.errUltima != nil {
		return nil, r.errUltima
	}
	if len(r.ventas) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.ventas[len(r.ventas)-1], nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	for _, v := range r.ventas {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) FindByNumero(_ context.Context, numero string) (*model.Venta, error) {
	for _, v := range r.ventas {
		if v.Numero == numero {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) List(context.Context, repository.VentaFilter) ([]model.Venta, int64, error) {
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── Remisiones ───────────────────────────────────────────────────────────────

type stubRemisionRepo struct {
	remisiones []*model.Remision
	detalles   map[uuid.UUID]*model.RemisionDetalle
	errUltima  error
}

func newStubRemisionRepo() *stubRemisionRepo {
	return &stubRemisionRepo{detalles: map[uuid.UUID]*model.RemisionDetalle{}}
}

func (r *stubRemisionRepo) CreateTx(_ *gorm.DB, rem *model.Remision) error {
	for _, existente := range r.remisiones {
		if existente.Numero == rem.Numero {
			return gorm.ErrDuplicatedKey
		}
	}
	if rem.ID == uuid.Nil {
		rem.ID = uuid.New()
	}
	for i := range rem.Detalles {
		d := &rem.Detalles[i]
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		d.RemisionID = rem.ID
		r.detalles[d.ID] = d
	}
	r.remisiones = append(r.remisiones, rem)
	return nil
}

func (r *stubRemisionRepo) UltimaTx(_ *gorm.DB) (*model.Remision, error) {
	if r.errUltima != nil {
		return nil, r.errUltima
	}
	if len(r.remisiones) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.remisiones[len(r.remisiones)-1], nil
}

func (r *stubRemisionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Remision, error) {
	return r.buscar(id)
}

func (r *stubRemisionRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Remision, error) {
	return r.buscar(id)
}

func (r *stubRemisionRepo) buscar(id uuid.UUID) (*model.Remision, error) {
	for _, rem := range r.remisiones {
		if rem.ID == id {
			return rem, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRemisionRepo) FindDetalleTx(_ *gorm.DB, id uuid.UUID) (*model.RemisionDetalle, error) {
	d, ok := r.detalles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *stubRemisionRepo) MarcarDetalleFacturadoTx(_ *gorm.DB, id uuid.UUID) error {
	d, ok := r.detalles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Facturada = true
	return nil
}

func (r *stubRemisionRepo) MarcarFacturadaSiCompletaTx(_ *gorm.DB, id uuid.UUID) (bool, error) {
	rem, err := r.buscar(id)
	if err != nil {
		return false, err
	}
	for i := range rem.Detalles {
		if !rem.Detalles[i].Facturada {
			return false, nil
		}
	}
	rem.Facturada = true
	return true, nil
}

func (r *stubRemisionRepo) List(context.Context, repository.RemisionFilter) ([]model.Remision, int64, error) {
	out := make([]model.Remision, 0, len(r.remisiones))
	for _, rem := range r.remisiones {
		out = append(out, *rem)
	}
	return out, int64(len(out)), nil
}

func (r *stubRemisionRepo) DB() *gorm.DB { return nil }

var _ repository.RemisionRepository = (*stubRemisionRepo)(nil)

// ── Compras ──────────────────────────────────────────────────────────────────

type stubCompraRepo struct {
	compras []*model.Compra
}

func (r *stubCompraRepo) CreateTx(_ *gorm.DB, c *model.Compra) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.compras = append(r.compras, c)
	return nil
}

func (r *stubCompraRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Compra, error) {
	for _, c := range r.compras {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCompraRepo) List(context.Context, repository.CompraFilter) ([]model.Compra, int64, error) {
	out := make([]model.Compra, 0, len(r.compras))
	for _, c := range r.compras {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

// ── Devoluciones ─────────────────────────────────────────────────────────────

type stubDevolucionRepo struct {
	ventas  []*model.DevolucionVenta
	compras []*model.DevolucionCompra
}

func (r *stubDevolucionRepo) CreateVentaTx(_ *gorm.DB, d *model.DevolucionVenta) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.ventas = append(r.ventas, d)
	return nil
}

func (r *stubDevolucionRepo) CreateCompraTx(_ *gorm.DB, d *model.DevolucionCompra) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.compras = append(r.compras, d)
	return nil
}

func (r *stubDevolucionRepo) FindVentaByID(_ context.Context, id uuid.UUID) (*model.DevolucionVenta, error) {
	for _, d := range r.ventas {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDevolucionRepo) FindCompraByID(_ context.Context, id uuid.UUID) (*model.DevolucionCompra, error) {
	for _, d := range r.compras {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDevolucionRepo) ListVenta(context.Context, repository.DevolucionFilter) ([]model.DevolucionVenta, int64, error) {
	out := make([]model.DevolucionVenta, 0, len(r.ventas))
	for _, d := range r.ventas {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (r *stubDevolucionRepo) ListCompra(context.Context, repository.DevolucionFilter) ([]model.DevolucionCompra, int64, error) {
	out := make([]model.DevolucionCompra, 0, len(r.compras))
	for _, d := range r.compras {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (r *stubDevolucionRepo) DB() *gorm.DB { return nil }

var _ repository.DevolucionRepository = (*stubDevolucionRepo)(nil)

// ── Cambios ──────────────────────────────────────────────────────────────────

type stubCambioRepo struct {
	cambios []*model.Cambio
}

func (r *stubCambioRepo) CreateTx(_ *gorm.DB, c *model.Cambio) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cambios = append(r.cambios, c)
	return nil
}

func (r *stubCambioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cambio, error) {
	for _, c := range r.cambios {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCambioRepo) List(_ context.Context, _, _ *time.Time, _, _ int) ([]model.Cambio, int64, error) {
	out := make([]model.Cambio, 0, len(r.cambios))
	for _, c := range r.cambios {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCambioRepo) DB() *gorm.DB { return nil }

var _ repository.CambioRepository = (*stubCambioRepo)(nil)

// ── Proformas ────────────────────────────────────────────────────────────────

type stubProformaRepo struct {
	proformas []*model.Proforma
	errUltima error
}

func (r *stubProformaRepo) CreateTx(_ *gorm.DB, p *model.Proforma) error {
	for _, existente := range r.proformas {
		if existente.Numero == p.Numero {
			return gorm.ErrDuplicatedKey
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proformas = append(r.proformas, p)
	return nil
}

func (r *stubProformaRepo) UltimaTx(_ *gorm.DB) (*model.Proforma, error) {
	if r.errUltima != nil {
		return nil, r.errUltima
	}
	if len(r.proformas) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.proformas[len(r.proformas)-1], nil
}

func (r *stubProformaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proforma, error) {
	for _, p := range r.proformas {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProformaRepo) List(_ context.Context, _, _ *time.Time, _, _ int) ([]model.Proforma, int64, error) {
	out := make([]model.Proforma, 0, len(r.proformas))
	for _, p := range r.proformas {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProformaRepo) DB() *gorm.DB { return nil }

var _ repository.ProformaRepository = (*stubProformaRepo)(nil)

// ── Fixtures ─────────────────────────────────────────────────────────────────

// nuevoRegistro preloads the seed movement types with fresh IDs.
func nuevoRegistro() *TipoRegistry {
	tipos := model.TiposSemilla()
	for i := range tipos {
		tipos[i].ID = uuid.New()
	}
	registro := NewTipoRegistry(nil)
	registro.Precargar(tipos)
	return registro
}

func seedArticulo(repo *stubArticuloRepo, numeroParte string, stock int) *model.Articulo {
	precio := decimal.RequireFromString("150.0000")
	a := &model.Articulo{
		ID:            uuid.New(),
		NumeroParte:   numeroParte,
		Nombre:        "Repuesto " + strings.ToUpper(numeroParte),
		CostoCordoba:  decimal.RequireFromString("100.0000"),
		CostoDolar:    decimal.RequireFromString("2.7397"),
		PrecioCordoba: precio,
		PrecioDolar:   decimal.RequireFromString("4.1096"),
		StockActual:   stock,
		Activo:        true,
	}
	repo.articulos[a.ID] = a
	return a
}

// entornoInventario wires an InventarioService over the in-memory stubs.
func entornoInventario() (InventarioService, *stubArticuloRepo, *stubMovimientoRepo, *TipoRegistry) {
	registro := nuevoRegistro()
	articuloRepo := newStubArticuloRepo()
	movRepo := newStubMovimientoRepo(registro)
	return NewInventarioService(articuloRepo, movRepo, registro), articuloRepo, movRepo, registro
}
