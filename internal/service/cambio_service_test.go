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

func entornoCambios() (CambioService, *stubCambioRepo, *stubArticuloRepo, *stubMovimientoRepo) {
	registro := nuevoRegistro()
	articuloRepo := newStubArticuloRepo()
	movRepo := newStubMovimientoRepo(registro)
	inventario := NewInventarioService(articuloRepo, movRepo, registro)
	cambioRepo := &stubCambioRepo{}
	svc := NewCambioService(cambioRepo, inventario, &stubTasaSvc{tasa: tasaPrueba})
	return svc, cambioRepo, articuloRepo, movRepo
}

func TestRegistrarCambio_MueveAmbosArticulos(t *testing.T) {
	svc, cambioRepo, articuloRepo, movRepo := entornoCambios()
	entregado := seedArticulo(articuloRepo, "FAR-001", 5)
	recibido := seedArticulo(articuloRepo, "FAR-002", 1)

	resp, err := svc.Registrar(context.Background(), dto.RegistrarCambioRequest{
		Motivo: "cliente trajo el modelo equivocado",
		Lineas: []dto.CambioLineaRequest{{
			ArticuloSalidaID:  entregado.ID.String(),
			ArticuloEntradaID: recibido.ID.String(),
			Cantidad:          2,
			PrecioCordoba:     decimal.RequireFromString("150"),
		}},
	}, "vendedor1")
	require.NoError(t, err)

	assert.Equal(t, 3, entregado.StockActual)
	assert.Equal(t, 3, recibido.StockActual)
	require.Len(t, cambioRepo.cambios, 1)
	require.Len(t, resp.Lineas, 1)

	salidas := movRepo.porTipo(model.TipoCambioSalida)
	entradas := movRepo.porTipo(model.TipoCambioEntrada)
	require.Len(t, salidas, 1)
	require.Len(t, entradas, 1)
	assert.Equal(t, "Cambio de mercadería: cliente trajo el modelo equivocado", salidas[0].Anotacion)
	assert.Equal(t, salidas[0].Anotacion, entradas[0].Anotacion)
}

func TestRegistrarCambio_MismoArticulo(t *testing.T) {
	svc, cambioRepo, articuloRepo, _ := entornoCambios()
	a := seedArticulo(articuloRepo, "FAR-003", 5)

	_, err := svc.Registrar(context.Background(), dto.RegistrarCambioRequest{
		Motivo: "intento de cambio sobre sí mismo",
		Lineas: []dto.CambioLineaRequest{{
			ArticuloSalidaID:  a.ID.String(),
			ArticuloEntradaID: a.ID.String(),
			Cantidad:          1,
			PrecioCordoba:     decimal.RequireFromString("150"),
		}},
	}, "vendedor1")

	var valErr *apierror.ValidacionError
	require.ErrorAs(t, err, &valErr)
	assert.Empty(t, cambioRepo.cambios)
	assert.Equal(t, 5, a.StockActual)
}

func TestRegistrarCambio_StockInsuficienteEnSalida(t *testing.T) {
	svc, cambioRepo, articuloRepo, movRepo := entornoCambios()
	entregado := seedArticulo(articuloRepo, "FAR-004", 1)
	recibido := seedArticulo(articuloRepo, "FAR-005", 0)

	_, err := svc.Registrar(context.Background(), dto.RegistrarCambioRequest{
		Motivo: "cambio sin existencia que lo respalde",
		Lineas: []dto.CambioLineaRequest{{
			ArticuloSalidaID:  entregado.ID.String(),
			ArticuloEntradaID: recibido.ID.String(),
			Cantidad:          3,
			PrecioCordoba:     decimal.RequireFromString("150"),
		}},
	}, "vendedor1")

	var stockErr *apierror.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "FAR-004", stockErr.Articulo)

	// The outbound side failed first, so the inbound never happened.
	assert.Equal(t, 0, recibido.StockActual)
	assert.Empty(t, movRepo.porTipo(model.TipoCambioEntrada))
	assert.Empty(t, cambioRepo.cambios)
}
