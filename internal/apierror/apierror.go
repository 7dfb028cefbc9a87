// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ── Domain error kinds ───────────────────────────────────────────────────────
// Services return these sentinels (usually wrapped with fmt.Errorf + %w so the
// detail message survives) and handlers translate them to HTTP statuses via
// Status. Anything unrecognized maps to 500.

var (
	ErrNoEncontrado      = errors.New("recurso no encontrado")
	ErrValidacion        = errors.New("entrada invalida")
	ErrConflicto         = errors.New("conflicto con el estado actual")
	ErrStockInsuficiente = errors.New("stock insuficiente")
	ErrCredenciales      = errors.New("credenciales invalidas")
)

// Status maps a domain error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, ErrValidacion):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConflicto), errors.Is(err, ErrStockInsuficiente):
		return http.StatusConflict
	case errors.Is(err, ErrCredenciales):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
