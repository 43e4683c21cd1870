package service

import (
	"context"
	"testing"

	"ayher/internal/apierror"
	"ayher/internal/dto"
	"ayher/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entornoDevolucionesT struct {
	svc          DevolucionService
	devRepo      *stubDevolucionRepo
	ventaRepo    *stubVentaRepo
	compraRepo   *stubCompraRepo
	articuloRepo *stubArticuloRepo
	movRepo      *stubMovimientoRepo
}

func entornoDevoluciones() *entornoDevolucionesT {
	registro := nuevoRegistro()
	articuloRepo := newStubArticuloRepo()
	movRepo := newStubMovimientoRepo(registro)
	inventario := NewInventarioService(articuloRepo, movRepo, registro)
	devRepo := &stubDevolucionRepo{}
	ventaRepo := &stubVentaRepo{}
	compraRepo := &stubCompraRepo{}
	return &entornoDevolucionesT{
		svc:          NewDevolucionService(devRepo, ventaRepo, compraRepo, inventario, &stubTasaSvc{tasa: tasaPrueba}),
		devRepo:      devRepo,
		ventaRepo:    ventaRepo,
		compraRepo:   compraRepo,
		articuloRepo: articuloRepo,
		movRepo:      movRepo,
	}
}

func TestRegistrarDevolucionVenta_ReingresaStock(t *testing.T) {
	e := entornoDevoluciones()
	a := seedArticulo(e.articuloRepo, "AMO-001", 5)

	resp, err := e.svc.RegistrarVenta(context.Background(), dto.RegistrarDevolucionVentaRequest{
		Motivo: "pieza equivocada entregada",
		Lineas: []dto.DevolucionLineaRequest{{
			ArticuloID:    a.ID.String(),
			Cantidad:      2,
			PrecioCordoba: decimal.RequireFromString("150"),
		}},
	}, "vendedor1")
	require.NoError(t, err)

	assert.Equal(t, 7, a.StockActual)
	assert.Equal(t, "300", resp.TotalCordoba.String())

	movs := e.movRepo.porTipo(model.TipoDevolucionCliente)
	require.Len(t, movs, 1)
	assert.Equal(t, "Devolución de cliente: pieza equivocada entregada", movs[0].Anotacion)
}

func TestRegistrarDevolucionVenta_VentaInexistente(t *testing.T) {
	e := entornoDevoluciones()
	a := seedArticulo(e.articuloRepo, "AMO-002", 5)
	ventaID := uuid.New().String()

	_, err := e.svc.RegistrarVenta(context.Background(), dto.RegistrarDevolucionVentaRequest{
		VentaID: &ventaID,
		Motivo:  "cliente no reclamó la factura",
		Lineas: []dto.DevolucionLineaRequest{{
			ArticuloID:    a.ID.String(),
			Cantidad:      1,
			PrecioCordoba: decimal.RequireFromString("150"),
		}},
	}, "vendedor1")

	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
	assert.Equal(t, 5, a.StockActual)
	assert.Empty(t, e.devRepo.ventas)
}

func TestRegistrarDevolucionCompra_DescargaStock(t *testing.T) {
	e := entornoDevoluciones()
	a := seedArticulo(e.articuloRepo, "AMO-003", 6)

	resp, err := e.svc.RegistrarCompra(context.Background(), dto.RegistrarDevolucionCompraRequest{
		Motivo: "lote llegó con defecto de fábrica",
		Lineas: []dto.DevolucionLineaRequest{{
			ArticuloID:    a.ID.String(),
			Cantidad:      4,
			PrecioCordoba: decimal.RequireFromString("100"),
		}},
	}, "bodeguero1")
	require.NoError(t, err)

	assert.Equal(t, 2, a.StockActual)
	assert.Equal(t, "400", resp.TotalCordoba.String())

	movs := e.movRepo.porTipo(model.TipoDevolucionProveedor)
	require.Len(t, movs, 1)
	assert.Equal(t, "Devolución a proveedor: lote llegó con defecto de fábrica", movs[0].Anotacion)
}

func TestRegistrarDevolucionCompra_StockInsuficiente(t *testing.T) {
	e := entornoDevoluciones()
	a := seedArticulo(e.articuloRepo, "AMO-004", 1)

	_, err := e.svc.RegistrarCompra(context.Background(), dto.RegistrarDevolucionCompraRequest{
		Motivo: "devolución mayor que la existencia",
		Lineas: []dto.DevolucionLineaRequest{{
			ArticuloID:    a.ID.String(),
			Cantidad:      3,
			PrecioCordoba: decimal.RequireFromString("100"),
		}},
	}, "bodeguero1")

	var stockErr *apierror.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "AMO-004", stockErr.Articulo)
	assert.Equal(t, 1, a.StockActual)
	assert.Empty(t, e.devRepo.compras)
}

func TestRegistrarDevolucionCompra_HeredaProveedorDeCompra(t *testing.T) {
	e := entornoDevoluciones()
	a := seedArticulo(e.articuloRepo, "AMO-005", 8)

	proveedorID := uuid.New()
	compra := &model.Compra{ProveedorID: &proveedorID}
	require.NoError(t, e.compraRepo.CreateTx(nil, compra))
	compraID := compra.ID.String()

	resp, err := e.svc.RegistrarCompra(context.Background(), dto.RegistrarDevolucionCompraRequest{
		CompraID: &compraID,
		Motivo:   "referencia incorrecta en el pedido",
		Lineas: []dto.DevolucionLineaRequest{{
			ArticuloID:    a.ID.String(),
			Cantidad:      2,
			PrecioCordoba: decimal.RequireFromString("100"),
		}},
	}, "bodeguero1")
	require.NoError(t, err)

	require.NotNil(t, resp.ProveedorID)
	assert.Equal(t, proveedorID.String(), *resp.ProveedorID)
	require.NotNil(t, resp.CompraID)
	assert.Equal(t, compraID, *resp.CompraID)
}
