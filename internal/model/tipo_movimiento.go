package model

import (
	"time"

	"github.com/google/uuid"
)

// Canonical movement-type names. The registry is seeded once by cmd/seedtipos;
// a workflow requesting a name missing from the table is a configuration
// defect, never a user error.
const (
	TipoEntrada             = "Entrada"
	TipoSalida              = "Salida"
	TipoCambioEntrada       = "Cambio Entrada"
	TipoCambioSalida        = "Cambio Salida"
	TipoDevolucionCliente   = "Devolución de Cliente"
	TipoDevolucionProveedor = "Devolución a Proveedor"
	TipoSalidaPorRemision   = "Salida por Remisión"
	TipoAjusteInventario    = "Ajuste de Inventario"
)

// TipoMovimiento is immutable reference data: each named kind declares whether
// it touches stock and in which direction.
type TipoMovimiento struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	AfectaStock bool      `gorm:"not null"`
	EsEntrada   bool      `gorm:"not null"`
	CreatedAt   time.Time
}

// TableName overrides GORM's default pluralization.
func (TipoMovimiento) TableName() string { return "tipos_movimiento" }

// TiposSemilla is the seed set for cmd/seedtipos and the test fixtures.
func TiposSemilla() []TipoMovimiento {
	return []TipoMovimiento{
		{Nombre: TipoEntrada, AfectaStock: true, EsEntrada: true},
		{Nombre: TipoSalida, AfectaStock: true, EsEntrada: false},
		{Nombre: TipoCambioEntrada, AfectaStock: true, EsEntrada: true},
		{Nombre: TipoCambioSalida, AfectaStock: true, EsEntrada: false},
		{Nombre: TipoDevolucionCliente, AfectaStock: true, EsEntrada: true},
		{Nombre: TipoDevolucionProveedor, AfectaStock: true, EsEntrada: false},
		{Nombre: TipoSalidaPorRemision, AfectaStock: true, EsEntrada: false},
		{Nombre: TipoAjusteInventario, AfectaStock: true, EsEntrada: true},
	}
}
