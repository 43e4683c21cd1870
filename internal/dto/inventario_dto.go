package dto

import "github.com/shopspring/decimal"

// ─── Movimientos ────────────────────────────────────────────────────────────

// MovimientoFilter is bound from the query string of GET /v1/movimientos.
type MovimientoFilter struct {
	ArticuloID string `form:"articulo_id"       validate:"omitempty,uuid"`
	Tipo       string `form:"tipo"`
	Page       int    `form:"page,default=1"    validate:"min=1"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovimientoResponse struct {
	ID            string           `json:"id"`
	ArticuloID    string           `json:"articulo_id"`
	NumeroParte   string           `json:"numero_parte,omitempty"`
	Tipo          string           `json:"tipo"`
	EsEntrada     bool             `json:"es_entrada"`
	Cantidad      int              `json:"cantidad"`
	PrecioCordoba *decimal.Decimal `json:"precio_cordoba,omitempty"`
	PrecioDolar   *decimal.Decimal `json:"precio_dolar,omitempty"`
	TasaCambio    *decimal.Decimal `json:"tasa_cambio,omitempty"`
	Anotacion     string           `json:"anotacion,omitempty"`
	Usuario       string           `json:"usuario,omitempty"`
	CreatedAt     string           `json:"created_at"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// ─── Ajuste manual ──────────────────────────────────────────────────────────

// AjusteInventarioRequest records a manual stock correction. Cantidad is the
// signed delta: positive adds stock, negative removes it.
type AjusteInventarioRequest struct {
	ArticuloID string `json:"articulo_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required"`
	Motivo     string `json:"motivo"      validate:"required,min=5,max=300"`
}
