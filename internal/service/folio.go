package service

import (
	"fmt"
	"strconv"
	"strings"
)

// Folio prefixes per document series. Each series numbers independently.
const (
	folioPrefijoVenta    = "F"
	folioPrefijoRemision = "REM-"
	folioPrefijoProforma = "PRO-"
	folioAncho           = 6
)

// siguienteFolio derives the next display number in a series from the most
// recently issued one: take the trailing digit run, increment, re-pad.
// An empty or unparsable predecessor starts the series at 1, so manually
// entered numbers never break the sequence.
func siguienteFolio(ultimo, prefijo string) string {
	n := 0
	if digits := colaDigitos(ultimo); digits != "" {
		// Ignore parse overflow: a folio that large is hand-entered garbage
		// and the series restarts from 1.
		n, _ = strconv.Atoi(digits)
	}
	return fmt.Sprintf("%s%0*d", prefijo, folioAncho, n+1)
}

// colaDigitos returns the trailing run of ASCII digits of s.
func colaDigitos(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[i:]
}

// folioValido rejects caller-supplied numbers that would collide with the
// whitespace-trimmed unique index or carry control characters.
func folioValido(numero string) bool {
	numero = strings.TrimSpace(numero)
	if numero == "" || len(numero) > 30 {
		return false
	}
	for _, r := range numero {
		if r < ' ' {
			return false
		}
	}
	return true
}
