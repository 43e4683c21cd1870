package service

import (
	"testing"

	"ayher/internal/apierror"
	"ayher/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTipoRegistry_Resolver(t *testing.T) {
	registro := nuevoRegistro()

	entrada, err := registro.Resolver(model.TipoEntrada)
	require.NoError(t, err)
	assert.True(t, entrada.EsEntrada)
	assert.True(t, entrada.AfectaStock)

	salida, err := registro.Resolver(model.TipoSalida)
	require.NoError(t, err)
	assert.False(t, salida.EsEntrada)
}

func TestTipoRegistry_NombreDesconocido(t *testing.T) {
	registro := nuevoRegistro()

	_, err := registro.Resolver("Traslado entre bodegas")
	var cfgErr *apierror.ConfiguracionError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Detalle, "Traslado entre bodegas")
}

func TestTipoRegistry_ListarCompleto(t *testing.T) {
	registro := nuevoRegistro()
	assert.Len(t, registro.Listar(), len(model.TiposSemilla()))
}
