package dto

// CrearInventarioRequest assigns stock of a book to a punto de venta for the
// first time. StockMinimo nil = inherit the book's default threshold.
type CrearInventarioRequest struct {
	LibroID      uint `json:"libro_id"       validate:"required"`
	PuntoVentaID uint `json:"punto_venta_id" validate:"required"`
	Stock        int  `json:"stock"          validate:"min=0"`
	StockMinimo  *int `json:"stock_minimo"   validate:"omitempty,min=0"`
}

// AjusteStockRequest applies a signed delta to a stock row.
type AjusteStockRequest struct {
	Delta         int    `json:"delta"         validate:"required"`
	Observaciones string `json:"observaciones" validate:"max=500"`
}

// FijarStockRequest sets stock to an absolute value.
type FijarStockRequest struct {
	Stock int `json:"stock" validate:"min=0"`
}

type InventarioResponse struct {
	ID           uint   `json:"id"`
	LibroID      uint   `json:"libro_id"`
	Libro        string `json:"libro"`
	PuntoVentaID uint   `json:"punto_venta_id"`
	PuntoVenta   string `json:"punto_venta"`
	Stock        int    `json:"stock"`
	StockMinimo  int    `json:"stock_minimo"`
}

// AlertaStockResponse is a derived low-stock view — never persisted,
// recomputed from inventario on every request.
type AlertaStockResponse struct {
	InventarioID uint   `json:"inventario_id"`
	Libro        string `json:"libro"`
	PuntoVenta   string `json:"punto_venta"`
	Stock        int    `json:"stock"`
	StockMinimo  int    `json:"stock_minimo"`
}
