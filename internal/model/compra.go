package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compra is a supplier purchase: header plus detail lines. Created atomically
// with one inbound movement per line; never created partially.
type Compra struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroFactura string          `gorm:"index"` // supplier's own invoice number
	ProveedorID   *uuid.UUID      `gorm:"type:uuid;index"`
	TotalCordoba  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalDolar    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TasaCambio    decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Observaciones *string
	Usuario       string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Proveedor *Proveedor      `gorm:"foreignKey:ProveedorID"`
	Detalles  []CompraDetalle `gorm:"foreignKey:CompraID"`
}

// CompraDetalle is one purchased line: unit cost in córdobas plus the dollar
// cost derived from the purchase's exchange-rate snapshot.
type CompraDetalle struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ArticuloID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad     int             `gorm:"not null"`
	CostoCordoba decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CostoDolar   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt    time.Time

	Articulo *Articulo `gorm:"foreignKey:ArticuloID"`
}

func (CompraDetalle) TableName() string { return "compra_detalles" }
