package dto

type CrearPuntoVentaRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=1,max=200"`
	Ubicacion string `json:"ubicacion" validate:"max=200"`
	Tipo      string `json:"tipo"      validate:"required,oneof=tienda metro online"`
}

type ActualizarPuntoVentaRequest struct {
	Nombre    string `json:"nombre"    validate:"omitempty,min=1,max=200"`
	Ubicacion string `json:"ubicacion" validate:"omitempty,max=200"`
	Tipo      string `json:"tipo"      validate:"omitempty,oneof=tienda metro online"`
}

type PuntoVentaResponse struct {
	ID        uint   `json:"id"`
	Nombre    string `json:"nombre"`
	Ubicacion string `json:"ubicacion"`
	Tipo      string `json:"tipo"`
}
