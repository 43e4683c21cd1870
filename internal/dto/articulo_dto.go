package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// ArticuloFilter is bound from the query string of GET /v1/articulos.
type ArticuloFilter struct {
	NumeroParte string `form:"numero_parte"`
	Nombre      string `form:"nombre"`
	MarcaID     string `form:"marca_id"             validate:"omitempty,uuid"`
	Activo      string `form:"activo,default=true"` // true | false | all
	BajoMinimo  bool   `form:"bajo_minimo"`
	Page        int    `form:"page,default=1"       validate:"min=1"`
	Limit       int    `form:"limit,default=50"     validate:"min=1,max=200"`
}

type ArticuloListResponse struct {
	Data  []ArticuloResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearArticuloRequest struct {
	NumeroParte   string          `json:"numero_parte"   validate:"required,min=1,max=60"`
	Nombre        string          `json:"nombre"         validate:"required,min=2,max=150"`
	Descripcion   *string         `json:"descripcion"    validate:"omitempty,max=500"`
	MarcaID       *string         `json:"marca_id"       validate:"omitempty,uuid"`
	CostoCordoba  decimal.Decimal `json:"costo_cordoba"  validate:"required"`
	PrecioCordoba decimal.Decimal `json:"precio_cordoba" validate:"required"`
	StockInicial  int             `json:"stock_inicial"  validate:"min=0"`
	StockMinimo   int             `json:"stock_minimo"   validate:"min=0"`
}

type ActualizarArticuloRequest struct {
	Nombre        *string          `json:"nombre"         validate:"omitempty,min=2,max=150"`
	Descripcion   *string          `json:"descripcion"    validate:"omitempty,max=500"`
	MarcaID       *string          `json:"marca_id"       validate:"omitempty,uuid"`
	CostoCordoba  *decimal.Decimal `json:"costo_cordoba"`
	PrecioCordoba *decimal.Decimal `json:"precio_cordoba"`
	StockMinimo   *int             `json:"stock_minimo"   validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ArticuloResponse struct {
	ID            string          `json:"id"`
	NumeroParte   string          `json:"numero_parte"`
	Nombre        string          `json:"nombre"`
	Descripcion   *string         `json:"descripcion,omitempty"`
	Marca         *string         `json:"marca,omitempty"`
	MarcaID       *string         `json:"marca_id,omitempty"`
	CostoCordoba  decimal.Decimal `json:"costo_cordoba"`
	CostoDolar    decimal.Decimal `json:"costo_dolar"`
	PrecioCordoba decimal.Decimal `json:"precio_cordoba"`
	PrecioDolar   decimal.Decimal `json:"precio_dolar"`
	StockActual   int             `json:"stock_actual"`
	StockMinimo   int             `json:"stock_minimo"`
	Activo        bool            `json:"activo"`
	CreatedAt     string          `json:"created_at"`
}

// AuditoriaStockResponse compares the materialized stock against the signed
// sum of the ledger for one artículo.
type AuditoriaStockResponse struct {
	ArticuloID  string `json:"articulo_id"`
	NumeroParte string `json:"numero_parte"`
	StockActual int    `json:"stock_actual"`
	SaldoLedger int    `json:"saldo_ledger"`
	Consistente bool   `json:"consistente"`
}
