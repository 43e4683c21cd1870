package dto

// ─── Marcas ─────────────────────────────────────────────────────────────────

type MarcaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=80"`
}

type MarcaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}

// ─── Proveedores ────────────────────────────────────────────────────────────

type ProveedorRequest struct {
	RazonSocial string  `json:"razon_social" validate:"required,min=2,max=150"`
	RUC         *string `json:"ruc"          validate:"omitempty,min=3,max=20"`
	Telefono    *string `json:"telefono"     validate:"omitempty,max=30"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Direccion   *string `json:"direccion"    validate:"omitempty,max=300"`
}

type ProveedorResponse struct {
	ID          string  `json:"id"`
	RazonSocial string  `json:"razon_social"`
	RUC         *string `json:"ruc,omitempty"`
	Telefono    *string `json:"telefono,omitempty"`
	Email       *string `json:"email,omitempty"`
	Direccion   *string `json:"direccion,omitempty"`
	Activo      bool    `json:"activo"`
}

// ─── Clientes ───────────────────────────────────────────────────────────────

type ClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=150"`
	Cedula    *string `json:"cedula"    validate:"omitempty,min=3,max=30"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=30"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion" validate:"omitempty,max=300"`
}

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Cedula    *string `json:"cedula,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Email     *string `json:"email,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Activo    bool    `json:"activo"`
}

// ─── Tipos de movimiento ────────────────────────────────────────────────────

type TipoMovimientoResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	AfectaStock bool   `json:"afecta_stock"`
	EsEntrada   bool   `json:"es_entrada"`
}
