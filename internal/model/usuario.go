package model

import "time"

// Roles de usuario.
const (
	RolAdmin    = "admin"
	RolVendedor = "vendedor"
)

// Usuario stores system users with role-based access.
// A vendedor is always tied to exactly one punto de venta; an admin never is.
// That pairing is enforced in the service layer on every create and update.
type Usuario struct {
	ID     uint    `gorm:"primaryKey"`
	Nombre string  `gorm:"size:150;not null"`
	Email  *string `gorm:"size:150;uniqueIndex"`
	// PasswordHash is bcrypt output; read operations never serialize it.
	PasswordHash string `gorm:"size:200;not null"`
	Rol          string `gorm:"size:20;not null"`
	PuntoVentaID *uint  `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	PuntoVenta *PuntoVenta `gorm:"foreignKey:PuntoVentaID"`
}

func (Usuario) TableName() string { return "usuarios" }
