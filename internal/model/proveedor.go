package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor is the supplier catalog referenced by compras y devoluciones.
type Proveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazonSocial string    `gorm:"not null"`
	RUC         *string   `gorm:"uniqueIndex;column:ruc"`
	Telefono    *string
	Email       *string
	Direccion   *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Proveedor) TableName() string { return "proveedores" }
