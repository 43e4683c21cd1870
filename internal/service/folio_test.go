package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiguienteFolio(t *testing.T) {
	casos := []struct {
		ultimo  string
		prefijo string
		quiere  string
	}{
		{"", folioPrefijoVenta, "F000001"},
		{"F000041", folioPrefijoVenta, "F000042"},
		{"F000999", folioPrefijoVenta, "F001000"},
		{"REM-000009", folioPrefijoRemision, "REM-000010"},
		{"PRO-000001", folioPrefijoProforma, "PRO-000002"},
		// A hand-entered predecessor without trailing digits restarts the series.
		{"FACTURA-MANUAL", folioPrefijoVenta, "F000001"},
		// Trailing digits of a manual number still drive the sequence.
		{"CONTADO-77", folioPrefijoVenta, "F000078"},
		// Width grows past the pad instead of wrapping.
		{"F999999", folioPrefijoVenta, "F1000000"},
	}
	for _, c := range casos {
		assert.Equal(t, c.quiere, siguienteFolio(c.ultimo, c.prefijo), "ultimo=%q", c.ultimo)
	}
}

func TestColaDigitos(t *testing.T) {
	assert.Equal(t, "000041", colaDigitos("F000041"))
	assert.Equal(t, "", colaDigitos("SIN-DIGITOS-"))
	assert.Equal(t, "123", colaDigitos("123"))
	assert.Equal(t, "", colaDigitos(""))
}

func TestFolioValido(t *testing.T) {
	assert.True(t, folioValido("F000123"))
	assert.True(t, folioValido("  F000123  ")) // trimmed before the length check
	assert.False(t, folioValido(""))
	assert.False(t, folioValido("   "))
	assert.False(t, folioValido("F00\t0123")) // embedded control character
	assert.False(t, folioValido("0123456789012345678901234567890")) // 31 chars
}
