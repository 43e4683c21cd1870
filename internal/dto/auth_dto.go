package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	Usuario   string `json:"usuario"`
	Rol       string `json:"rol"`
}

type CrearUsuarioRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=60"`
	Password string  `json:"password" validate:"required,min=8"`
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=120"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Rol      string  `json:"rol"      validate:"required,oneof=vendedor bodeguero administrador"`
}

type UsuarioResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Nombre   string  `json:"nombre"`
	Email    *string `json:"email,omitempty"`
	Rol      string  `json:"rol"`
	Activo   bool    `json:"activo"`
}
