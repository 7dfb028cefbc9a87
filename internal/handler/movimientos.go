package handler

import (
	"net/http"

	"libreria/internal/apierror"
	"libreria/internal/dto"
	"libreria/internal/service"

	"github.com/gin-gonic/gin"
)

type MovimientosHandler struct {
	inventario  service.InventarioService
	movimientos service.MovimientoService
}

func NewMovimientosHandler(inventario service.InventarioService, movimientos service.MovimientoService) *MovimientosHandler {
	return &MovimientosHandler{inventario: inventario, movimientos: movimientos}
}

// Listar returns the audit trail, newest first, with ?tipo= and
// ?inventario_id= filters plus page/limit pagination.
func (h *MovimientosHandler) Listar(c *gin.Context) {
	var filter dto.MovimientoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Parámetros de consulta inválidos"))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Parámetros de consulta inválidos"))
		return
	}
	resp, err := h.movimientos.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear registers a manual stock movement (entrada, salida, ajuste).
func (h *MovimientosHandler) Crear(c *gin.Context) {
	var req dto.CrearMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.inventario.RegistrarMovimiento(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
