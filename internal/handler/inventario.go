package handler

import (
	"net/http"
	"path/filepath"

	"libreria/internal/dto"
	"libreria/internal/middleware"
	"libreria/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct {
	svc    service.InventarioService
	ventas service.VentaService
}

func NewInventarioHandler(svc service.InventarioService, ventas service.VentaService) *InventarioHandler {
	return &InventarioHandler{svc: svc, ventas: ventas}
}

func (h *InventarioHandler) Crear(c *gin.Context) {
	var req dto.CrearInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar supports ?pv= to scope the view to one punto de venta.
func (h *InventarioHandler) Listar(c *gin.Context) {
	pv, ok := queryUint(c, "pv")
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), pv)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) Obtener(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ajustar applies a signed delta (restock, correction). The stock floor at
// zero is enforced atomically downstream.
func (h *InventarioHandler) Ajustar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AjusteStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req, usuarioIDFromClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) Fijar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.FijarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.FijarStock(c.Request.Context(), id, req, usuarioIDFromClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) StockBajo(c *gin.Context) {
	pv, ok := queryUint(c, "pv")
	if !ok {
		return
	}
	resp, err := h.svc.StockBajo(c.Request.Context(), pv)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) StockBajoPDF(c *gin.Context) {
	pv, ok := queryUint(c, "pv")
	if !ok {
		return
	}
	path, err := h.svc.ReporteStockBajoPDF(c.Request.Context(), pv)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// Vender registers a single-unit sale against a stock row.
func (h *InventarioHandler) Vender(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.ventas.RegistrarVenta(c.Request.Context(), id, usuarioIDFromClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// usuarioIDFromClaims attributes the movement to the authenticated user, when
// the route ran through JWTAuth.
func usuarioIDFromClaims(c *gin.Context) *uint {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return nil
	}
	id := claims.UserID
	return &id
}
