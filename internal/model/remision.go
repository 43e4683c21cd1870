package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Remision (delivery note) ships goods before the invoice exists: stock is
// decremented at shipment time. Facturada flips when every detail has been
// covered by a sale (or by the manual marking endpoint).
type Remision struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero        string          `gorm:"uniqueIndex;not null"` // REM-000001
	ClienteID     *uuid.UUID      `gorm:"type:uuid;index"`
	Facturada     bool            `gorm:"not null;default:false"`
	TotalCordoba  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalDolar    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TasaCambio    decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Observaciones *string
	Usuario       string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Cliente  *Cliente          `gorm:"foreignKey:ClienteID"`
	Detalles []RemisionDetalle `gorm:"foreignKey:RemisionID"`
}

// RemisionDetalle links the shipped line to the outbound movement it created,
// so the sale workflow can later annotate that movement when invoicing.
type RemisionDetalle struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RemisionID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ArticuloID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	MovimientoID  uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad      int             `gorm:"not null"`
	PrecioCordoba decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	PrecioDolar   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Facturada     bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time

	Articulo *Articulo `gorm:"foreignKey:ArticuloID"`
}

func (RemisionDetalle) TableName() string { return "remision_detalles" }
