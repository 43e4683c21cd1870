package dto

import "github.com/shopspring/decimal"

type RemisionLineaRequest struct {
	ArticuloID    string          `json:"articulo_id"    validate:"required,uuid"`
	Cantidad      int             `json:"cantidad"       validate:"required,min=1"`
	PrecioCordoba decimal.Decimal `json:"precio_cordoba" validate:"required"`
}

type RegistrarRemisionRequest struct {
	ClienteID     *string                `json:"cliente_id"    validate:"omitempty,uuid"`
	Observaciones *string                `json:"observaciones" validate:"omitempty,max=500"`
	Lineas        []RemisionLineaRequest `json:"lineas"        validate:"required,min=1,dive"`
	EnviarEmail   *string                `json:"enviar_email"  validate:"omitempty,email"`
}

type RemisionLineaResponse struct {
	ID            string          `json:"id"`
	ArticuloID    string          `json:"articulo_id"`
	NumeroParte   string          `json:"numero_parte,omitempty"`
	MovimientoID  string          `json:"movimiento_id"`
	Cantidad      int             `json:"cantidad"`
	PrecioCordoba decimal.Decimal `json:"precio_cordoba"`
	PrecioDolar   decimal.Decimal `json:"precio_dolar"`
	Facturada     bool            `json:"facturada"`
}

type RemisionResponse struct {
	ID            string                  `json:"id"`
	Numero        string                  `json:"numero"`
	Cliente       *string                 `json:"cliente,omitempty"`
	Facturada     bool                    `json:"facturada"`
	TotalCordoba  decimal.Decimal         `json:"total_cordoba"`
	TotalDolar    decimal.Decimal         `json:"total_dolar"`
	TasaCambio    decimal.Decimal         `json:"tasa_cambio"`
	Observaciones *string                 `json:"observaciones,omitempty"`
	Usuario       string                  `json:"usuario,omitempty"`
	Lineas        []RemisionLineaResponse `json:"lineas,omitempty"`
	CreatedAt     string                  `json:"created_at"`
}

type RemisionListResponse struct {
	Data  []RemisionResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// RemisionFilter is bound from the query string of GET /v1/remisiones.
type RemisionFilter struct {
	ClienteID string `form:"cliente_id"       validate:"omitempty,uuid"`
	Facturada string `form:"facturada"`        // true | false | empty = all
	Desde     string `form:"desde"`            // YYYY-MM-DD
	Hasta     string `form:"hasta"`            // YYYY-MM-DD
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}
