package model

import (
	"time"

	"github.com/google/uuid"
)

// Marca is the brand/category catalog referenced by artículos.
type Marca struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
