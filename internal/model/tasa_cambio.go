package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TasaCambio is a dated córdoba-per-dollar snapshot entered by the operator.
// Documents capture the value in force when they are persisted; recording a
// new rate never rewrites historical dollar figures.
type TasaCambio struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha     time.Time       `gorm:"type:date;uniqueIndex;not null"`
	Valor     decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Usuario   string
	CreatedAt time.Time
}

// TableName overrides GORM's default pluralization.
func (TasaCambio) TableName() string { return "tasas_cambio" }
