package dto

import "github.com/shopspring/decimal"

type CompraLineaRequest struct {
	ArticuloID   string          `json:"articulo_id"   validate:"required,uuid"`
	Cantidad     int             `json:"cantidad"      validate:"required,min=1"`
	CostoCordoba decimal.Decimal `json:"costo_cordoba" validate:"required"`
}

type RegistrarCompraRequest struct {
	ProveedorID   *string              `json:"proveedor_id"   validate:"omitempty,uuid"`
	NumeroFactura string               `json:"numero_factura" validate:"omitempty,max=60"`
	Observaciones *string              `json:"observaciones"  validate:"omitempty,max=500"`
	Lineas        []CompraLineaRequest `json:"lineas"         validate:"required,min=1,dive"`
	// ActualizarCostos: when true the artículo's catalog cost is refreshed
	// from each purchased line.
	ActualizarCostos bool `json:"actualizar_costos"`
}

type CompraLineaResponse struct {
	ArticuloID   string          `json:"articulo_id"`
	NumeroParte  string          `json:"numero_parte,omitempty"`
	Cantidad     int             `json:"cantidad"`
	CostoCordoba decimal.Decimal `json:"costo_cordoba"`
	CostoDolar   decimal.Decimal `json:"costo_dolar"`
}

type CompraResponse struct {
	ID            string                `json:"id"`
	NumeroFactura string                `json:"numero_factura,omitempty"`
	Proveedor     *string               `json:"proveedor,omitempty"`
	TotalCordoba  decimal.Decimal       `json:"total_cordoba"`
	TotalDolar    decimal.Decimal       `json:"total_dolar"`
	TasaCambio    decimal.Decimal       `json:"tasa_cambio"`
	Observaciones *string               `json:"observaciones,omitempty"`
	Usuario       string                `json:"usuario,omitempty"`
	Lineas        []CompraLineaResponse `json:"lineas,omitempty"`
	CreatedAt     string                `json:"created_at"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
