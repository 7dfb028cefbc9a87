package model

import "time"

// PuntoVenta is a physical or logical sales location holding its own inventory.
// Tipo: "tienda" | "metro" | "online"
type PuntoVenta struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"size:200;not null"`
	Ubicacion string `gorm:"size:200"`
	Tipo      string `gorm:"size:50"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization (punto_ventas → puntos_venta).
func (PuntoVenta) TableName() string { return "puntos_venta" }
