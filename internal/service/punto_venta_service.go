package service

import (
	"context"
	"errors"
	"fmt"

	"libreria/internal/apierror"
	"libreria/internal/dto"
	"libreria/internal/model"
	"libreria/internal/repository"

	"gorm.io/gorm"
)

type PuntoVentaService interface {
	Crear(ctx context.Context, req dto.CrearPuntoVentaRequest) (*dto.PuntoVentaResponse, error)
	Obtener(ctx context.Context, id uint) (*dto.PuntoVentaResponse, error)
	Listar(ctx context.Context) ([]dto.PuntoVentaResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarPuntoVentaRequest) (*dto.PuntoVentaResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type puntoVentaService struct {
	repo       repository.PuntoVentaRepository
	inventario repository.InventarioRepository
	usuarios   repository.UsuarioRepository
}

func NewPuntoVentaService(
	repo repository.PuntoVentaRepository,
	inventario repository.InventarioRepository,
	usuarios repository.UsuarioRepository,
) PuntoVentaService {
	return &puntoVentaService{repo: repo, inventario: inventario, usuarios: usuarios}
}

func (s *puntoVentaService) Crear(ctx context.Context, req dto.CrearPuntoVentaRequest) (*dto.PuntoVentaResponse, error) {
	pv := &model.PuntoVenta{
		Nombre:    req.Nombre,
		Ubicacion: req.Ubicacion,
		Tipo:      req.Tipo,
	}
	if err := s.repo.Create(ctx, pv); err != nil {
		return nil, err
	}
	return puntoVentaToResponse(pv), nil
}

func (s *puntoVentaService) Obtener(ctx context.Context, id uint) (*dto.PuntoVentaResponse, error) {
	pv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("punto de venta %d: %w", id, apierror.ErrNoEncontrado)
	}
	return puntoVentaToResponse(pv), nil
}

func (s *puntoVentaService) Listar(ctx context.Context) ([]dto.PuntoVentaResponse, error) {
	pvs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PuntoVentaResponse, len(pvs))
	for i := range pvs {
		resp[i] = *puntoVentaToResponse(&pvs[i])
	}
	return resp, nil
}

func (s *puntoVentaService) Actualizar(ctx context.Context, id uint, req dto.ActualizarPuntoVentaRequest) (*dto.PuntoVentaResponse, error) {
	pv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("punto de venta %d: %w", id, apierror.ErrNoEncontrado)
	}
	if req.Nombre != "" {
		pv.Nombre = req.Nombre
	}
	if req.Ubicacion != "" {
		pv.Ubicacion = req.Ubicacion
	}
	if req.Tipo != "" {
		pv.Tipo = req.Tipo
	}
	if err := s.repo.Update(ctx, pv); err != nil {
		return nil, err
	}
	return puntoVentaToResponse(pv), nil
}

// Eliminar rejects the delete while any inventario row or usuario still
// references the punto de venta (referential integrity before the FK fires).
func (s *puntoVentaService) Eliminar(ctx context.Context, id uint) error {
	nInv, err := s.inventario.CountByPuntoVenta(ctx, id)
	if err != nil {
		return err
	}
	if nInv > 0 {
		return fmt.Errorf("el punto de venta tiene %d filas de inventario: %w", nInv, apierror.ErrConflicto)
	}
	nUsr, err := s.usuarios.CountByPuntoVenta(ctx, id)
	if err != nil {
		return err
	}
	if nUsr > 0 {
		return fmt.Errorf("el punto de venta tiene %d usuarios asignados: %w", nUsr, apierror.ErrConflicto)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("punto de venta %d: %w", id, apierror.ErrNoEncontrado)
		}
		return err
	}
	return nil
}

func puntoVentaToResponse(pv *model.PuntoVenta) *dto.PuntoVentaResponse {
	return &dto.PuntoVentaResponse{
		ID:        pv.ID,
		Nombre:    pv.Nombre,
		Ubicacion: pv.Ubicacion,
		Tipo:      pv.Tipo,
	}
}
