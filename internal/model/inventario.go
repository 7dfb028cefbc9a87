package model

import "time"

// Inventario is one stock row per (libro, punto de venta) pair.
// Stock can never go below zero: every decrement runs as a conditional
// UPDATE ... WHERE stock >= n, so concurrent sales serialize per row.
type Inventario struct {
	ID           uint `gorm:"primaryKey"`
	LibroID      uint `gorm:"not null;uniqueIndex:idx_libro_pv"`
	PuntoVentaID uint `gorm:"not null;uniqueIndex:idx_libro_pv"`
	Stock        int  `gorm:"not null;default:0;check:stock >= 0"`
	StockMinimo  int  `gorm:"not null;default:5"`
	UpdatedAt    time.Time

	Libro      *Libro      `gorm:"foreignKey:LibroID"`
	PuntoVenta *PuntoVenta `gorm:"foreignKey:PuntoVentaID"`
}

func (Inventario) TableName() string { return "inventario" }

// StockBajo reports whether the row is at or below its alert threshold.
func (i *Inventario) StockBajo() bool { return i.Stock <= i.StockMinimo }
