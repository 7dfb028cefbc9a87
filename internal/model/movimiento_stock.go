package model

import "time"

// Tipos de movimiento de stock.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
	MovimientoVenta   = "venta"
	MovimientoAjuste  = "ajuste"
)

// MovimientoStock registra cada cambio de stock sobre una fila de inventario.
// Movements are immutable — no Update/Delete.
type MovimientoStock struct {
	ID            uint   `gorm:"primaryKey"`
	InventarioID  uint   `gorm:"not null;index"`
	Tipo          string `gorm:"size:20;not null"` // entrada | salida | venta | ajuste
	Cantidad      int    `gorm:"not null"`         // always positive; Tipo carries the direction
	StockAnterior int    `gorm:"not null"`
	StockNuevo    int    `gorm:"not null"`
	UsuarioID     *uint  `gorm:"index"`
	Observaciones string
	CreatedAt     time.Time

	Inventario *Inventario `gorm:"foreignKey:InventarioID"`
	Usuario    *Usuario    `gorm:"foreignKey:UsuarioID"`
}

// TableName overrides GORM's default pluralization (movimiento_stocks → movimientos_stock).
func (MovimientoStock) TableName() string { return "movimientos_stock" }
