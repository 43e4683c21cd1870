package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Proforma is a quote: numbered like the other documents but with no stock
// effect and no movements. Converting it into a sale is a separate request.
type Proforma struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero       string          `gorm:"uniqueIndex;not null"` // PRO-000001
	ClienteID    *uuid.UUID      `gorm:"type:uuid;index"`
	TotalCordoba decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalDolar   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TasaCambio   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Vigencia     *time.Time
	Usuario      string
	CreatedAt    time.Time

	Cliente  *Cliente          `gorm:"foreignKey:ClienteID"`
	Detalles []ProformaDetalle `gorm:"foreignKey:ProformaID"`
}

type ProformaDetalle struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProformaID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ArticuloID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad      int             `gorm:"not null"`
	PrecioCordoba decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	PrecioDolar   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt     time.Time

	Articulo *Articulo `gorm:"foreignKey:ArticuloID"`
}

func (ProformaDetalle) TableName() string { return "proforma_detalles" }
