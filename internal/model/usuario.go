package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is an auth principal. Rol: "vendedor" | "bodeguero" | "administrador".
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	Rol          string `gorm:"not null;default:'vendedor'"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
