package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movimiento is one append-only ledger entry against one artículo.
// Cantidad is always positive; the stock direction comes solely from the
// movement type's EsEntrada flag. History is never deleted — a movement is
// later amended only by concatenating to Anotacion (delivery-note invoicing
// cross-references do exactly that).
type Movimiento struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ArticuloID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	TipoMovimientoID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Cantidad         int              `gorm:"not null"`
	PrecioCordoba    *decimal.Decimal `gorm:"type:decimal(14,4)"`
	PrecioDolar      *decimal.Decimal `gorm:"type:decimal(14,4)"`
	TasaCambio       *decimal.Decimal `gorm:"type:decimal(14,4)"`
	Anotacion        string
	Usuario          string
	CreatedAt        time.Time

	Articulo       *Articulo       `gorm:"foreignKey:ArticuloID"`
	TipoMovimiento *TipoMovimiento `gorm:"foreignKey:TipoMovimientoID"`
}
