package dto

// MovimientoFilter is bound from the query string of GET /movimientos/.
type MovimientoFilter struct {
	Tipo         string `form:"tipo"  validate:"omitempty,oneof=entrada salida venta ajuste"`
	InventarioID *uint  `form:"inventario_id"`
	Page         int    `form:"page,default=1"    validate:"min=1"`
	Limit        int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type CrearMovimientoRequest struct {
	InventarioID  uint   `json:"inventario_id" validate:"required"`
	Tipo          string `json:"tipo"          validate:"required,oneof=entrada salida venta ajuste"`
	Cantidad      int    `json:"cantidad"      validate:"required,gt=0"`
	UsuarioID     *uint  `json:"usuario_id"`
	Observaciones string `json:"observaciones" validate:"max=500"`
}

// ListaMovimientosResponse pages the audit trail.
type ListaMovimientosResponse struct {
	Items []MovimientoResponse `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

type MovimientoResponse struct {
	ID            uint   `json:"id"`
	InventarioID  uint   `json:"inventario_id"`
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
	UsuarioID     *uint  `json:"usuario_id"`
	Observaciones string `json:"observaciones"`
	CreatedAt     string `json:"created_at"`
}
