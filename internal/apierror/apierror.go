// Package apierror provides standardized error response structures for the API
// and the typed business errors raised by the document workflows.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ── Business error taxonomy ──────────────────────────────────────────────────
// The workflow services return these typed errors; the handler layer maps them
// to HTTP status codes. Any of them occurring inside a transaction aborts it.

// ErrNoEncontrado marks a missing artículo, documento, or other entity.
var ErrNoEncontrado = errors.New("registro no encontrado")

// NoEncontrado wraps ErrNoEncontrado with the entity description.
func NoEncontrado(que string) error {
	return fmt.Errorf("%s: %w", que, ErrNoEncontrado)
}

// StockInsuficienteError rejects a delivery note or sale line requesting more
// units than the artículo has on hand. The whole transaction rolls back.
type StockInsuficienteError struct {
	Articulo   string
	Disponible int
	Solicitado int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: disponible %d, solicitado %d",
		e.Articulo, e.Disponible, e.Solicitado)
}

// ConfiguracionError signals missing reference data (a movement type name not
// present in the registry). This is a server-side defect, never user input:
// it is logged in full and surfaced to the client as a generic failure.
type ConfiguracionError struct {
	Detalle string
}

func (e *ConfiguracionError) Error() string {
	return "error de configuracion: " + e.Detalle
}

// ConflictoError surfaces a uniqueness/serialization race (e.g. two concurrent
// transactions issuing the same document number). The caller retries the whole
// request; nothing is retried internally.
type ConflictoError struct {
	Detalle string
}

func (e *ConflictoError) Error() string {
	return "conflicto: " + e.Detalle
}

// ValidacionError marks a business rule violated by otherwise well-formed
// input (non-positive quantity, empty line list, …).
type ValidacionError struct {
	Detalle string
}

func (e *ValidacionError) Error() string {
	return e.Detalle
}
