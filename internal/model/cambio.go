package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cambio trades one artículo for another with the same counterparty. Each
// detail produces two movements sharing the detail's unit price: Cambio Salida
// for the artículo handed over and Cambio Entrada for the one received.
type Cambio struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID  *uuid.UUID      `gorm:"type:uuid;index"`
	Motivo     string
	TasaCambio decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Usuario    string
	CreatedAt  time.Time

	Detalles []CambioDetalle `gorm:"foreignKey:CambioID"`
}

type CambioDetalle struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CambioID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ArticuloSalidaID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ArticuloEntradaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad          int             `gorm:"not null"`
	PrecioCordoba     decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	PrecioDolar       decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt         time.Time

	ArticuloSalida  *Articulo `gorm:"foreignKey:ArticuloSalidaID"`
	ArticuloEntrada *Articulo `gorm:"foreignKey:ArticuloEntradaID"`
}

func (CambioDetalle) TableName() string { return "cambio_detalles" }
