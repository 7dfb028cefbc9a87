package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Contrasena string `json:"contrasena" validate:"required,min=4"`
}

type CrearUsuarioRequest struct {
	Nombre       string  `json:"nombre"         validate:"required,min=1,max=150"`
	Email        *string `json:"email"          validate:"omitempty,email"`
	Contrasena   string  `json:"contrasena"     validate:"required,min=6"`
	Rol          string  `json:"rol"            validate:"required,oneof=admin vendedor"`
	PuntoVentaID *uint   `json:"punto_venta_id"`
}

// ActualizarUsuarioRequest is a partial update; nil/empty fields keep their
// current value. The rol/punto_venta pairing is re-validated against the
// merged result, not just the changed fields.
type ActualizarUsuarioRequest struct {
	Nombre       string  `json:"nombre"         validate:"omitempty,min=1,max=150"`
	Email        *string `json:"email"          validate:"omitempty,email"`
	Contrasena   string  `json:"contrasena"     validate:"omitempty,min=6"`
	Rol          string  `json:"rol"            validate:"omitempty,oneof=admin vendedor"`
	PuntoVentaID *uint   `json:"punto_venta_id"`
	// QuitarPuntoVenta clears the PV assignment (needed because a nil
	// PuntoVentaID also means "not sent" in a PATCH body).
	QuitarPuntoVenta bool `json:"quitar_punto_venta"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UsuarioResponse never carries the credential.
type UsuarioResponse struct {
	ID           uint    `json:"id"`
	Nombre       string  `json:"nombre"`
	Email        *string `json:"email"`
	Rol          string  `json:"rol"`
	PuntoVentaID *uint   `json:"punto_venta_id"`
}

type LoginResponse struct {
	Message      string `json:"message"`
	Role         string `json:"role"`
	PuntoVentaID *uint  `json:"punto_venta_id"`
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}
