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

func entornoArticulos() (ArticuloService, *stubArticuloRepo, *stubMovimientoRepo) {
	registro := nuevoRegistro()
	articuloRepo := newStubArticuloRepo()
	movRepo := newStubMovimientoRepo(registro)
	inventario := NewInventarioService(articuloRepo, movRepo, registro)
	svc := NewArticuloService(articuloRepo, inventario, &stubTasaSvc{tasa: tasaPrueba})
	return svc, articuloRepo, movRepo
}

func TestCrearArticulo(t *testing.T) {
	svc, _, movRepo := entornoArticulos()

	resp, err := svc.Crear(context.Background(), dto.CrearArticuloRequest{
		NumeroParte:   "BOS-0242",
		Nombre:        "Bujía Bosch platino",
		CostoCordoba:  decimal.RequireFromString("100"),
		PrecioCordoba: decimal.RequireFromString("150"),
	}, "admin")
	require.NoError(t, err)

	assert.True(t, resp.Activo)
	assert.Equal(t, 0, resp.StockActual)
	// Dollar figures derive from the rate in force at creation.
	assert.Equal(t, "2.7397", resp.CostoDolar.String())
	assert.Equal(t, "4.1096", resp.PrecioDolar.String())
	assert.Empty(t, movRepo.movimientos)
}

func TestCrearArticulo_ConStockInicial(t *testing.T) {
	svc, _, movRepo := entornoArticulos()

	resp, err := svc.Crear(context.Background(), dto.CrearArticuloRequest{
		NumeroParte:   "BOS-0243",
		Nombre:        "Filtro de aceite",
		CostoCordoba:  decimal.RequireFromString("100"),
		PrecioCordoba: decimal.RequireFromString("150"),
		StockInicial:  6,
	}, "admin")
	require.NoError(t, err)

	assert.Equal(t, 6, resp.StockActual)

	ajustes := movRepo.porTipo(model.TipoAjusteInventario)
	require.Len(t, ajustes, 1)
	assert.Equal(t, 6, ajustes[0].Cantidad)
	assert.Equal(t, "Stock inicial", ajustes[0].Anotacion)
}

func TestCrearArticulo_NumeroParteDuplicado(t *testing.T) {
	svc, _, _ := entornoArticulos()
	req := dto.CrearArticuloRequest{
		NumeroParte:   "BOS-0244",
		Nombre:        "Pastilla de freno",
		CostoCordoba:  decimal.RequireFromString("100"),
		PrecioCordoba: decimal.RequireFromString("150"),
	}

	_, err := svc.Crear(context.Background(), req, "admin")
	require.NoError(t, err)

	_, err = svc.Crear(context.Background(), req, "admin")
	var confErr *apierror.ConflictoError
	require.ErrorAs(t, err, &confErr)
	assert.Contains(t, confErr.Detalle, "BOS-0244")
}

func TestCrearArticulo_CostoNegativo(t *testing.T) {
	svc, _, _ := entornoArticulos()

	_, err := svc.Crear(context.Background(), dto.CrearArticuloRequest{
		NumeroParte:   "BOS-0245",
		Nombre:        "Correa de distribución",
		CostoCordoba:  decimal.RequireFromString("-1"),
		PrecioCordoba: decimal.RequireFromString("150"),
	}, "admin")

	var valErr *apierror.ValidacionError
	assert.ErrorAs(t, err, &valErr)
}

func TestActualizarArticulo_NoTocaStock(t *testing.T) {
	svc, articuloRepo, _ := entornoArticulos()
	a := seedArticulo(articuloRepo, "BOS-0246", 9)
	nombre := "Bujía Bosch iridio"
	precio := decimal.RequireFromString("175")

	resp, err := svc.Actualizar(context.Background(), a.ID, dto.ActualizarArticuloRequest{
		Nombre:        &nombre,
		PrecioCordoba: &precio,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bujía Bosch iridio", resp.Nombre)
	assert.Equal(t, "175", resp.PrecioCordoba.String())
	assert.Equal(t, 9, resp.StockActual)
}

func TestDesactivarArticulo(t *testing.T) {
	svc, articuloRepo, _ := entornoArticulos()
	a := seedArticulo(articuloRepo, "BOS-0247", 0)

	require.NoError(t, svc.Desactivar(context.Background(), a.ID))
	assert.False(t, a.Activo)

	require.NoError(t, svc.Reactivar(context.Background(), a.ID))
	assert.True(t, a.Activo)
}
