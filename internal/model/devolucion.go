package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DevolucionVenta is a credit note: goods come back from a customer and
// re-enter stock (Devolución de Cliente movements).
type DevolucionVenta struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID      *uuid.UUID      `gorm:"type:uuid;index"`
	Motivo       string
	TotalCordoba decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalDolar   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TasaCambio   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Usuario      string
	CreatedAt    time.Time

	Detalles []DevolucionVentaDetalle `gorm:"foreignKey:DevolucionID"`
}

func (DevolucionVenta) TableName() string { return "devoluciones_venta" }

type DevolucionVentaDetalle struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DevolucionID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ArticuloID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad      int             `gorm:"not null"`
	PrecioCordoba decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	PrecioDolar   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt     time.Time

	Articulo *Articulo `gorm:"foreignKey:ArticuloID"`
}

func (DevolucionVentaDetalle) TableName() string { return "devolucion_venta_detalles" }

// DevolucionCompra returns goods to a supplier: the symmetric outbound case
// (Devolución a Proveedor movements).
type DevolucionCompra struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraID     *uuid.UUID      `gorm:"type:uuid;index"`
	ProveedorID  *uuid.UUID      `gorm:"type:uuid;index"`
	Motivo       string
	TotalCordoba decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalDolar   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TasaCambio   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Usuario      string
	CreatedAt    time.Time

	Detalles []DevolucionCompraDetalle `gorm:"foreignKey:DevolucionID"`
}

func (DevolucionCompra) TableName() string { return "devoluciones_compra" }

type DevolucionCompraDetalle struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DevolucionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ArticuloID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad     int             `gorm:"not null"`
	CostoCordoba decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CostoDolar   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt    time.Time

	Articulo *Articulo `gorm:"foreignKey:ArticuloID"`
}

func (DevolucionCompraDetalle) TableName() string { return "devolucion_compra_detalles" }
