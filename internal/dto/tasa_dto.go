package dto

import "github.com/shopspring/decimal"

// RegistrarTasaRequest records the córdoba-per-dollar rate for a date.
type RegistrarTasaRequest struct {
	Fecha string          `json:"fecha" validate:"required,datetime=2006-01-02"`
	Valor decimal.Decimal `json:"valor" validate:"required"`
}

type TasaResponse struct {
	ID      string          `json:"id"`
	Fecha   string          `json:"fecha"`
	Valor   decimal.Decimal `json:"valor"`
	Usuario string          `json:"usuario,omitempty"`
}

type TasaListResponse struct {
	Data []TasaResponse `json:"data"`
}
