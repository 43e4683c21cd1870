package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Articulo is one inventory line (an auto part). Prices and costs are carried
// in both currencies; the dollar figures are frozen at write time from the
// exchange-rate snapshot in force, never recomputed on read.
//
// StockActual is a materialized running quantity: it must always equal the
// signed sum of the stock-affecting movements recorded against the artículo.
// It is mutated exclusively by InventarioService inside the same transaction
// that inserts the corresponding Movimiento, and always as a relative
// increment (stock_actual + ?), never an absolute assignment.
type Articulo struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroParte   string    `gorm:"uniqueIndex;not null"`
	Nombre        string    `gorm:"index;not null"`
	Descripcion   *string
	MarcaID       *uuid.UUID      `gorm:"type:uuid;index"`
	CostoCordoba  decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CostoDolar    decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	PrecioCordoba decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	PrecioDolar   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	StockActual   int             `gorm:"not null;default:0"`
	StockMinimo   int             `gorm:"not null;default:0"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Marca *Marca `gorm:"foreignKey:MarcaID"`
}
