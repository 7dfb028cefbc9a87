package dto

import "github.com/shopspring/decimal"

type CrearLibroRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=1,max=200"`
	Autor       string          `json:"autor"        validate:"required,min=1,max=200"`
	Precio      decimal.Decimal `json:"precio"       validate:"min=0"`
	StockMinimo *int            `json:"stock_minimo" validate:"omitempty,min=0"`
}

type ActualizarLibroRequest struct {
	Nombre      string           `json:"nombre"       validate:"omitempty,min=1,max=200"`
	Autor       string           `json:"autor"        validate:"omitempty,min=1,max=200"`
	Precio      *decimal.Decimal `json:"precio"`
	StockMinimo *int             `json:"stock_minimo" validate:"omitempty,min=0"`
}

type LibroResponse struct {
	ID          uint            `json:"id"`
	Nombre      string          `json:"nombre"`
	Autor       string          `json:"autor"`
	Precio      decimal.Decimal `json:"precio"`
	StockMinimo int             `json:"stock_minimo"`
	CreatedAt   string          `json:"created_at"`
}
