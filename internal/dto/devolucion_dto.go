package dto

import "github.com/shopspring/decimal"

// ─── Devolución de venta (cliente → bodega) ─────────────────────────────────

type DevolucionLineaRequest struct {
	ArticuloID    string          `json:"articulo_id"    validate:"required,uuid"`
	Cantidad      int             `json:"cantidad"       validate:"required,min=1"`
	PrecioCordoba decimal.Decimal `json:"precio_cordoba" validate:"required"`
}

type RegistrarDevolucionVentaRequest struct {
	VentaID *string                  `json:"venta_id" validate:"omitempty,uuid"`
	Motivo  string                   `json:"motivo"   validate:"required,min=5,max=300"`
	Lineas  []DevolucionLineaRequest `json:"lineas"   validate:"required,min=1,dive"`
}

// ─── Devolución de compra (bodega → proveedor) ──────────────────────────────

type RegistrarDevolucionCompraRequest struct {
	CompraID    *string                  `json:"compra_id"    validate:"omitempty,uuid"`
	ProveedorID *string                  `json:"proveedor_id" validate:"omitempty,uuid"`
	Motivo      string                   `json:"motivo"       validate:"required,min=5,max=300"`
	Lineas      []DevolucionLineaRequest `json:"lineas"       validate:"required,min=1,dive"`
}

// ─── Responses ──────────────────────────────────────────────────────────────

type DevolucionLineaResponse struct {
	ArticuloID    string          `json:"articulo_id"`
	NumeroParte   string          `json:"numero_parte,omitempty"`
	Cantidad      int             `json:"cantidad"`
	PrecioCordoba decimal.Decimal `json:"precio_cordoba"`
	PrecioDolar   decimal.Decimal `json:"precio_dolar"`
}

type DevolucionResponse struct {
	ID           string                    `json:"id"`
	VentaID      *string                   `json:"venta_id,omitempty"`
	CompraID     *string                   `json:"compra_id,omitempty"`
	ProveedorID  *string                   `json:"proveedor_id,omitempty"`
	Motivo       string                    `json:"motivo"`
	TotalCordoba decimal.Decimal           `json:"total_cordoba"`
	TotalDolar   decimal.Decimal           `json:"total_dolar"`
	TasaCambio   decimal.Decimal           `json:"tasa_cambio"`
	Usuario      string                    `json:"usuario,omitempty"`
	Lineas       []DevolucionLineaResponse `json:"lineas,omitempty"`
	CreatedAt    string                    `json:"created_at"`
}

type DevolucionListResponse struct {
	Data  []DevolucionResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// DevolucionFilter is bound from the query string of the list endpoints.
type DevolucionFilter struct {
	Desde string `form:"desde"`
	Hasta string `form:"hasta"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}
