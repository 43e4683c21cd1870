package service

import (
	"context"
	"math/rand"
	"testing"

	"ayher/internal/apierror"
	"ayher/internal/dto"
	"ayher/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAjustarUnoTx_EntradaSumaStock(t *testing.T) {
	svc, articuloRepo, movRepo, _ := entornoInventario()
	a := seedArticulo(articuloRepo, "FIL-001", 10)

	mov, err := svc.AjustarUnoTx(nil, AjusteLinea{
		ArticuloID: a.ID,
		Tipo:       model.TipoEntrada,
		Cantidad:   5,
		Anotacion:  "Compra factura A-100",
	}, "bodeguero1")
	require.NoError(t, err)

	assert.Equal(t, 15, a.StockActual)
	assert.Equal(t, 5, mov.Cantidad)
	assert.Equal(t, "bodeguero1", mov.Usuario)
	assert.Len(t, movRepo.movimientos, 1)
}

func TestAjustarUnoTx_SalidaRestaStock(t *testing.T) {
	svc, articuloRepo, movRepo, _ := entornoInventario()
	a := seedArticulo(articuloRepo, "FIL-002", 10)

	mov, err := svc.AjustarUnoTx(nil, AjusteLinea{
		ArticuloID: a.ID,
		Tipo:       model.TipoSalida,
		Cantidad:   4,
	}, "vendedor1")
	require.NoError(t, err)

	assert.Equal(t, 6, a.StockActual)
	// Cantidad stays positive in the ledger; direction lives on the type.
	assert.Equal(t, 4, mov.Cantidad)

	saldo, err := movRepo.SaldoPorArticulo(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, -4, saldo)
}

func TestAjustarUnoTx_StockInsuficiente(t *testing.T) {
	svc, articuloRepo, movRepo, _ := entornoInventario()
	a := seedArticulo(articuloRepo, "FIL-003", 3)

	_, err := svc.AjustarUnoTx(nil, AjusteLinea{
		ArticuloID: a.ID,
		Tipo:       model.TipoSalida,
		Cantidad:   5,
	}, "vendedor1")

	var stockErr *apierror.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "FIL-003", stockErr.Articulo)
	assert.Equal(t, 3, stockErr.Disponible)
	assert.Equal(t, 5, stockErr.Solicitado)

	// Nothing was recorded and nothing moved.
	assert.Equal(t, 3, a.StockActual)
	assert.Empty(t, movRepo.movimientos)
}

func TestAjustarUnoTx_TipoDesconocido(t *testing.T) {
	svc, articuloRepo, _, _ := entornoInventario()
	a := seedArticulo(articuloRepo, "FIL-004", 10)

	_, err := svc.AjustarUnoTx(nil, AjusteLinea{
		ArticuloID: a.ID,
		Tipo:       "Merma",
		Cantidad:   1,
	}, "vendedor1")

	var cfgErr *apierror.ConfiguracionError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Detalle, "Merma")
}

func TestAjustarUnoTx_CantidadNoPositiva(t *testing.T) {
	svc, articuloRepo, _, _ := entornoInventario()
	a := seedArticulo(articuloRepo, "FIL-005", 10)

	_, err := svc.AjustarUnoTx(nil, AjusteLinea{
		ArticuloID: a.ID,
		Tipo:       model.TipoEntrada,
		Cantidad:   0,
	}, "vendedor1")

	var valErr *apierror.ValidacionError
	assert.ErrorAs(t, err, &valErr)
}

func TestAjustarLoteTx_PrimerFalloAborta(t *testing.T) {
	svc, articuloRepo, movRepo, _ := entornoInventario()
	conStock := seedArticulo(articuloRepo, "FIL-006", 10)
	sinStock := seedArticulo(articuloRepo, "FIL-007", 1)

	_, err := svc.AjustarLoteTx(nil, []AjusteLinea{
		{ArticuloID: conStock.ID, Tipo: model.TipoSalida, Cantidad: 2},
		{ArticuloID: sinStock.ID, Tipo: model.TipoSalida, Cantidad: 5},
	}, "vendedor1")

	var stockErr *apierror.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "FIL-007", stockErr.Articulo)
	// Every line is validated before anything touches the ledger.
	assert.Empty(t, movRepo.movimientos)
	assert.Equal(t, 10, conStock.StockActual)
	assert.Equal(t, 1, sinStock.StockActual)
}

func TestAjustarLoteTx_AgregaDeltasPorArticulo(t *testing.T) {
	svc, articuloRepo, movRepo, _ := entornoInventario()
	a := seedArticulo(articuloRepo, "FIL-012", 10)
	b := seedArticulo(articuloRepo, "FIL-013", 4)

	movs, err := svc.AjustarLoteTx(nil, []AjusteLinea{
		{ArticuloID: a.ID, Tipo: model.TipoEntrada, Cantidad: 5},
		{ArticuloID: b.ID, Tipo: model.TipoSalida, Cantidad: 1},
		{ArticuloID: a.ID, Tipo: model.TipoSalida, Cantidad: 3},
		{ArticuloID: a.ID, Tipo: model.TipoEntrada, Cantidad: 2},
	}, "bodeguero1")
	require.NoError(t, err)

	// One ledger row per line, one net stock change per artículo.
	require.Len(t, movs, 4)
	assert.Len(t, movRepo.movimientos, 4)
	assert.Equal(t, 14, a.StockActual)
	assert.Equal(t, 3, b.StockActual)

	saldoA, err := movRepo.SaldoPorArticulo(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, saldoA)
}

func TestAjustarLoteTx_ConsumeEntradaDelMismoLote(t *testing.T) {
	svc, articuloRepo, _, _ := entornoInventario()
	a := seedArticulo(articuloRepo, "FIL-014", 1)

	// The inbound line lands first, so the outbound one has cover.
	_, err := svc.AjustarLoteTx(nil, []AjusteLinea{
		{ArticuloID: a.ID, Tipo: model.TipoEntrada, Cantidad: 5},
		{ArticuloID: a.ID, Tipo: model.TipoSalida, Cantidad: 4},
	}, "bodeguero1")
	require.NoError(t, err)
	assert.Equal(t, 2, a.StockActual)

	// Reversed order the cover does not exist yet, exactly as if the lines
	// were applied one by one.
	_, err = svc.AjustarLoteTx(nil, []AjusteLinea{
		{ArticuloID: a.ID, Tipo: model.TipoSalida, Cantidad: 4},
		{ArticuloID: a.ID, Tipo: model.TipoEntrada, Cantidad: 5},
	}, "bodeguero1")
	var stockErr *apierror.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Disponible)
	assert.Equal(t, 2, a.StockActual)
}

func TestAjusteManual_PositivoUsaAjusteInventario(t *testing.T) {
	svc, articuloRepo, movRepo, _ := entornoInventario()
	a := seedArticulo(articuloRepo, "FIL-008", 10)

	resp, err := svc.AjusteManual(context.Background(), dto.AjusteInventarioRequest{
		ArticuloID: a.ID.String(),
		Cantidad:   3,
		Motivo:     "conteo físico de fin de mes",
	}, "admin")
	require.NoError(t, err)

	assert.Equal(t, 13, a.StockActual)
	assert.Equal(t, model.TipoAjusteInventario, resp.Tipo)
	assert.Equal(t, "Ajuste manual: conteo físico de fin de mes", resp.Anotacion)
	assert.Len(t, movRepo.porTipo(model.TipoAjusteInventario), 1)
}

func TestAjusteManual_NegativoUsaSalida(t *testing.T) {
	svc, articuloRepo, movRepo, _ := entornoInventario()
	a := seedArticulo(articuloRepo, "FIL-009", 10)

	resp, err := svc.AjusteManual(context.Background(), dto.AjusteInventarioRequest{
		ArticuloID: a.ID.String(),
		Cantidad:   -4,
		Motivo:     "pieza dañada en bodega",
	}, "admin")
	require.NoError(t, err)

	assert.Equal(t, 6, a.StockActual)
	assert.Equal(t, model.TipoSalida, resp.Tipo)
	// The ledger entry carries the magnitude, not the sign.
	assert.Equal(t, 4, resp.Cantidad)
	salidas := movRepo.porTipo(model.TipoSalida)
	require.Len(t, salidas, 1)
	assert.Equal(t, 4, salidas[0].Cantidad)
}

func TestAjusteManual_CantidadCero(t *testing.T) {
	svc, articuloRepo, _, _ := entornoInventario()
	a := seedArticulo(articuloRepo, "FIL-010", 10)

	_, err := svc.AjusteManual(context.Background(), dto.AjusteInventarioRequest{
		ArticuloID: a.ID.String(),
		Cantidad:   0,
		Motivo:     "motivo cualquiera",
	}, "admin")

	var valErr *apierror.ValidacionError
	assert.ErrorAs(t, err, &valErr)
}

func TestAuditarStock(t *testing.T) {
	svc, articuloRepo, _, _ := entornoInventario()
	a := seedArticulo(articuloRepo, "FIL-011", 0)

	_, err := svc.AjustarUnoTx(nil, AjusteLinea{
		ArticuloID: a.ID, Tipo: model.TipoEntrada, Cantidad: 8,
	}, "bodeguero1")
	require.NoError(t, err)
	_, err = svc.AjustarUnoTx(nil, AjusteLinea{
		ArticuloID: a.ID, Tipo: model.TipoSalida, Cantidad: 3,
	}, "vendedor1")
	require.NoError(t, err)

	resp, err := svc.AuditarStock(context.Background(), a.ID)
	require.NoError(t, err)
	assert.True(t, resp.Consistente)
	assert.Equal(t, 5, resp.StockActual)
	assert.Equal(t, 5, resp.SaldoLedger)

	// Corrupt the materialized quantity behind the ledger's back.
	a.StockActual = 7
	resp, err = svc.AuditarStock(context.Background(), a.ID)
	require.NoError(t, err)
	assert.False(t, resp.Consistente)
	assert.Equal(t, 7, resp.StockActual)
	assert.Equal(t, 5, resp.SaldoLedger)
}

// A long random mix of compras, ventas, remisiones, devoluciones y cambios
// must leave stock_actual equal to the signed ledger sum after every single
// call, rejected documents included.
func TestStockConservadoEnSecuenciaAleatoria(t *testing.T) {
	registro := nuevoRegistro()
	articuloRepo := newStubArticuloRepo()
	movRepo := newStubMovimientoRepo(registro)
	inventario := NewInventarioService(articuloRepo, movRepo, registro)
	tasas := &stubTasaSvc{tasa: tasaPrueba}

	ventaRepo := &stubVentaRepo{}
	remisionRepo := newStubRemisionRepo()
	compraRepo := &stubCompraRepo{}

	compras := NewCompraService(compraRepo, articuloRepo, inventario, tasas)
	ventas := NewVentaService(ventaRepo, remisionRepo, movRepo, inventario, tasas, nil)
	remisiones := NewRemisionService(remisionRepo, movRepo, inventario, tasas, nil)
	devoluciones := NewDevolucionService(&stubDevolucionRepo{}, ventaRepo, compraRepo, inventario, tasas)
	cambios := NewCambioService(&stubCambioRepo{}, inventario, tasas)

	articulos := []*model.Articulo{
		seedArticulo(articuloRepo, "RND-001", 0),
		seedArticulo(articuloRepo, "RND-002", 0),
		seedArticulo(articuloRepo, "RND-003", 0),
	}

	ctx := context.Background()
	verificar := func(paso int) {
		for _, a := range articulos {
			saldo, err := movRepo.SaldoPorArticulo(ctx, a.ID)
			require.NoError(t, err)
			require.Equalf(t, saldo, a.StockActual,
				"paso %d: stock de %s divergió del ledger", paso, a.NumeroParte)
		}
	}

	rng := rand.New(rand.NewSource(20260901))
	precio := decimal.RequireFromString("150")
	costo := decimal.RequireFromString("100")

	for paso := 0; paso < 400; paso++ {
		a := articulos[rng.Intn(len(articulos))]
		cantidad := rng.Intn(6) + 1

		var err error
		switch rng.Intn(5) {
		case 0:
			_, err = compras.Registrar(ctx, dto.RegistrarCompraRequest{
				Lineas: []dto.CompraLineaRequest{{
					ArticuloID: a.ID.String(), Cantidad: cantidad, CostoCordoba: costo,
				}},
			}, "bodeguero1")
		case 1:
			_, err = ventas.Registrar(ctx, dto.RegistrarVentaRequest{
				Lineas: []dto.VentaLineaRequest{{
					ArticuloID: a.ID.String(), Cantidad: cantidad, PrecioCordoba: precio,
				}},
			}, "vendedor1")
		case 2:
			_, err = remisiones.Registrar(ctx, dto.RegistrarRemisionRequest{
				Lineas: []dto.RemisionLineaRequest{{
					ArticuloID: a.ID.String(), Cantidad: cantidad, PrecioCordoba: precio,
				}},
			}, "vendedor1")
		case 3:
			_, err = devoluciones.RegistrarVenta(ctx, dto.RegistrarDevolucionVentaRequest{
				Motivo: "secuencia de prueba",
				Lineas: []dto.DevolucionLineaRequest{{
					ArticuloID: a.ID.String(), Cantidad: cantidad, PrecioCordoba: precio,
				}},
			}, "vendedor1")
		case 4:
			b := articulos[rng.Intn(len(articulos))]
			if b.ID == a.ID {
				continue
			}
			_, err = cambios.Registrar(ctx, dto.RegistrarCambioRequest{
				Motivo: "secuencia de prueba",
				Lineas: []dto.CambioLineaRequest{{
					ArticuloSalidaID:  a.ID.String(),
					ArticuloEntradaID: b.ID.String(),
					Cantidad:          cantidad,
					PrecioCordoba:     precio,
				}},
			}, "vendedor1")
		}

		if err != nil {
			// Outbound documents may legitimately run out of stock; any other
			// failure is a real defect.
			var stockErr *apierror.StockInsuficienteError
			require.ErrorAs(t, err, &stockErr)
		}
		verificar(paso)
	}

	// The sequence produced real traffic, not a wall of rejections.
	require.Greater(t, len(movRepo.movimientos), 100)
}
