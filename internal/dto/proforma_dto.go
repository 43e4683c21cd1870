package dto

import "github.com/shopspring/decimal"

type ProformaLineaRequest struct {
	ArticuloID    string          `json:"articulo_id"    validate:"required,uuid"`
	Cantidad      int             `json:"cantidad"       validate:"required,min=1"`
	PrecioCordoba decimal.Decimal `json:"precio_cordoba" validate:"required"`
}

type RegistrarProformaRequest struct {
	ClienteID    *string                `json:"cliente_id"    validate:"omitempty,uuid"`
	VigenciaDias int                    `json:"vigencia_dias" validate:"omitempty,min=1,max=90"`
	Lineas       []ProformaLineaRequest `json:"lineas"        validate:"required,min=1,dive"`
}

type ProformaLineaResponse struct {
	ArticuloID    string          `json:"articulo_id"`
	NumeroParte   string          `json:"numero_parte,omitempty"`
	Cantidad      int             `json:"cantidad"`
	PrecioCordoba decimal.Decimal `json:"precio_cordoba"`
	PrecioDolar   decimal.Decimal `json:"precio_dolar"`
}

type ProformaResponse struct {
	ID           string                  `json:"id"`
	Numero       string                  `json:"numero"`
	Cliente      *string                 `json:"cliente,omitempty"`
	TotalCordoba decimal.Decimal         `json:"total_cordoba"`
	TotalDolar   decimal.Decimal         `json:"total_dolar"`
	TasaCambio   decimal.Decimal         `json:"tasa_cambio"`
	Vigencia     *string                 `json:"vigencia,omitempty"`
	Usuario      string                  `json:"usuario,omitempty"`
	Lineas       []ProformaLineaResponse `json:"lineas,omitempty"`
	CreatedAt    string                  `json:"created_at"`
}

type ProformaListResponse struct {
	Data  []ProformaResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
