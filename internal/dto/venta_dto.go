package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// VentaLineaRequest is one invoice line. Exactly one of the two shapes is
// valid per line:
//   - remision_detalle_id set → the quantity was already shipped through a
//     delivery note; no new stock effect.
//   - remision_detalle_id empty → a fresh line; stock is decremented now.
type VentaLineaRequest struct {
	ArticuloID        string          `json:"articulo_id"         validate:"required,uuid"`
	RemisionDetalleID *string         `json:"remision_detalle_id" validate:"omitempty,uuid"`
	Cantidad          int             `json:"cantidad"            validate:"required,min=1"`
	PrecioCordoba     decimal.Decimal `json:"precio_cordoba"      validate:"required"`
}

type RegistrarVentaRequest struct {
	ClienteID     *string             `json:"cliente_id"    validate:"omitempty,uuid"`
	Numero        *string             `json:"numero"        validate:"omitempty,max=30"`
	Observaciones *string             `json:"observaciones" validate:"omitempty,max=500"`
	Lineas        []VentaLineaRequest `json:"lineas"        validate:"required,min=1,dive"`
	// EnviarEmail: when set, the documento worker renders the invoice PDF and
	// mails it to this address after commit.
	EnviarEmail *string `json:"enviar_email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaLineaResponse struct {
	ArticuloID        string          `json:"articulo_id"`
	NumeroParte       string          `json:"numero_parte,omitempty"`
	RemisionDetalleID *string         `json:"remision_detalle_id,omitempty"`
	Cantidad          int             `json:"cantidad"`
	PrecioCordoba     decimal.Decimal `json:"precio_cordoba"`
	PrecioDolar       decimal.Decimal `json:"precio_dolar"`
}

type VentaResponse struct {
	ID            string               `json:"id"`
	Numero        string               `json:"numero"`
	Cliente       *string              `json:"cliente,omitempty"`
	TotalCordoba  decimal.Decimal      `json:"total_cordoba"`
	TotalDolar    decimal.Decimal      `json:"total_dolar"`
	TasaCambio    decimal.Decimal      `json:"tasa_cambio"`
	Observaciones *string              `json:"observaciones,omitempty"`
	Usuario       string               `json:"usuario,omitempty"`
	Lineas        []VentaLineaResponse `json:"lineas,omitempty"`
	CreatedAt     string               `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	ClienteID string `form:"cliente_id"       validate:"omitempty,uuid"`
	Desde     string `form:"desde"`            // YYYY-MM-DD
	Hasta     string `form:"hasta"`            // YYYY-MM-DD
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}
