package service

import (
	"context"
	"testing"

	"ayher/internal/apierror"
	"ayher/internal/dto"
	"ayher/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entornoCompras() (CompraService, *stubCompraRepo, *stubArticuloRepo, *stubMovimientoRepo) {
	registro := nuevoRegistro()
	articuloRepo := newStubArticuloRepo()
	movRepo := newStubMovimientoRepo(registro)
	inventario := NewInventarioService(articuloRepo, movRepo, registro)
	compraRepo := &stubCompraRepo{}
	svc := NewCompraService(compraRepo, articuloRepo, inventario, &stubTasaSvc{tasa: tasaPrueba})
	return svc, compraRepo, articuloRepo, movRepo
}

func TestRegistrarCompra_IncrementaStock(t *testing.T) {
	svc, compraRepo, articuloRepo, movRepo := entornoCompras()
	a := seedArticulo(articuloRepo, "BAT-001", 2)

	resp, err := svc.Registrar(context.Background(), dto.RegistrarCompraRequest{
		NumeroFactura: "PROV-4451",
		Lineas: []dto.CompraLineaRequest{{
			ArticuloID:   a.ID.String(),
			Cantidad:     10,
			CostoCordoba: decimal.RequireFromString("100"),
		}},
	}, "bodeguero1")
	require.NoError(t, err)

	assert.Equal(t, 12, a.StockActual)
	assert.Equal(t, "1000", resp.TotalCordoba.String())
	assert.Equal(t, "27.4", resp.TotalDolar.String())
	require.Len(t, compraRepo.compras, 1)

	entradas := movRepo.porTipo(model.TipoEntrada)
	require.Len(t, entradas, 1)
	assert.Equal(t, 10, entradas[0].Cantidad)
	assert.Equal(t, "Compra factura PROV-4451", entradas[0].Anotacion)
}

func TestRegistrarCompra_SinNumeroFactura(t *testing.T) {
	svc, _, articuloRepo, movRepo := entornoCompras()
	a := seedArticulo(articuloRepo, "BAT-002", 0)

	_, err := svc.Registrar(context.Background(), dto.RegistrarCompraRequest{
		Lineas: []dto.CompraLineaRequest{{
			ArticuloID:   a.ID.String(),
			Cantidad:     3,
			CostoCordoba: decimal.RequireFromString("100"),
		}},
	}, "bodeguero1")
	require.NoError(t, err)

	entradas := movRepo.porTipo(model.TipoEntrada)
	require.Len(t, entradas, 1)
	assert.Equal(t, "Compra", entradas[0].Anotacion)
}

func TestRegistrarCompra_ActualizaCostoCatalogo(t *testing.T) {
	svc, _, articuloRepo, _ := entornoCompras()
	a := seedArticulo(articuloRepo, "BAT-004", 0)

	_, err := svc.Registrar(context.Background(), dto.RegistrarCompraRequest{
		NumeroFactura:    "PROV-9001",
		ActualizarCostos: true,
		Lineas: []dto.CompraLineaRequest{{
			ArticuloID:   a.ID.String(),
			Cantidad:     5,
			CostoCordoba: decimal.RequireFromString("120"),
		}},
	}, "bodeguero1")
	require.NoError(t, err)

	// 120 córdobas a 36.5 son 3.2877 dólares.
	assert.Equal(t, "120", a.CostoCordoba.String())
	assert.Equal(t, "3.2877", a.CostoDolar.String())
}

func TestRegistrarCompra_SinActualizarCostosConservaCatalogo(t *testing.T) {
	svc, _, articuloRepo, _ := entornoCompras()
	a := seedArticulo(articuloRepo, "BAT-005", 0)

	_, err := svc.Registrar(context.Background(), dto.RegistrarCompraRequest{
		Lineas: []dto.CompraLineaRequest{{
			ArticuloID:   a.ID.String(),
			Cantidad:     5,
			CostoCordoba: decimal.RequireFromString("120"),
		}},
	}, "bodeguero1")
	require.NoError(t, err)

	assert.Equal(t, "100", a.CostoCordoba.String())
}

func TestRegistrarCompra_CostoNoPositivo(t *testing.T) {
	svc, compraRepo, articuloRepo, _ := entornoCompras()
	a := seedArticulo(articuloRepo, "BAT-003", 0)

	_, err := svc.Registrar(context.Background(), dto.RegistrarCompraRequest{
		Lineas: []dto.CompraLineaRequest{{
			ArticuloID:   a.ID.String(),
			Cantidad:     1,
			CostoCordoba: decimal.Zero,
		}},
	}, "bodeguero1")

	var valErr *apierror.ValidacionError
	require.ErrorAs(t, err, &valErr)
	assert.Empty(t, compraRepo.compras)
	assert.Equal(t, 0, a.StockActual)
}
