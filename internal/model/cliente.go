package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is the customer catalog referenced by ventas, remisiones y cambios.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Cedula    *string   `gorm:"uniqueIndex"`
	Telefono  *string
	Email     *string
	Direccion *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
