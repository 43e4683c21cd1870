package dto

import "github.com/shopspring/decimal"

// CambioLineaRequest trades cantidad units of articulo_salida for the same
// cantidad of articulo_entrada at one shared unit price.
type CambioLineaRequest struct {
	ArticuloSalidaID  string          `json:"articulo_salida_id"  validate:"required,uuid"`
	ArticuloEntradaID string          `json:"articulo_entrada_id" validate:"required,uuid"`
	Cantidad          int             `json:"cantidad"            validate:"required,min=1"`
	PrecioCordoba     decimal.Decimal `json:"precio_cordoba"      validate:"required"`
}

type RegistrarCambioRequest struct {
	ClienteID *string              `json:"cliente_id" validate:"omitempty,uuid"`
	Motivo    string               `json:"motivo"     validate:"required,min=5,max=300"`
	Lineas    []CambioLineaRequest `json:"lineas"     validate:"required,min=1,dive"`
}

type CambioLineaResponse struct {
	ArticuloSalidaID  string          `json:"articulo_salida_id"`
	ArticuloEntradaID string          `json:"articulo_entrada_id"`
	Cantidad          int             `json:"cantidad"`
	PrecioCordoba     decimal.Decimal `json:"precio_cordoba"`
	PrecioDolar       decimal.Decimal `json:"precio_dolar"`
}

type CambioResponse struct {
	ID         string                `json:"id"`
	ClienteID  *string               `json:"cliente_id,omitempty"`
	Motivo     string                `json:"motivo"`
	TasaCambio decimal.Decimal       `json:"tasa_cambio"`
	Usuario    string                `json:"usuario,omitempty"`
	Lineas     []CambioLineaResponse `json:"lineas,omitempty"`
	CreatedAt  string                `json:"created_at"`
}

type CambioListResponse struct {
	Data  []CambioResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
