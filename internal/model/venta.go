package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is a customer sale invoice. Numero carries the display number issued
// by the folio sequence (F000001, …) unless the caller supplied one verbatim.
type Venta struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero        string          `gorm:"uniqueIndex;not null"`
	ClienteID     *uuid.UUID      `gorm:"type:uuid;index"`
	TotalCordoba  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalDolar    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TasaCambio    decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Observaciones *string
	Usuario       string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
	Detalles []VentaDetalle `gorm:"foreignKey:VentaID"`
}

// VentaDetalle is one invoice line. A line whose quantity was already shipped
// through a delivery note keeps the reference in RemisionDetalleID; its stock
// effect happened at shipment time and is never repeated at invoicing.
type VentaDetalle struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ArticuloID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	RemisionDetalleID *uuid.UUID      `gorm:"type:uuid;index"`
	Cantidad          int             `gorm:"not null"`
	PrecioCordoba     decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	PrecioDolar       decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt         time.Time

	Articulo *Articulo `gorm:"foreignKey:ArticuloID"`
}

func (VentaDetalle) TableName() string { return "venta_detalles" }
