package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Libro is a catalog entry; stock lives in Inventario, one row per punto de venta.
type Libro struct {
	ID     uint            `gorm:"primaryKey"`
	Nombre string          `gorm:"size:200;index;not null"`
	Autor  string          `gorm:"size:200;not null"`
	Precio decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// StockMinimo is the default threshold copied into new Inventario rows.
	StockMinimo int `gorm:"not null;default:5"`
	CreatedAt   time.Time
}

func (Libro) TableName() string { return "libros" }
