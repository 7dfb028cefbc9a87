package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libreria/internal/apierror"
	"libreria/internal/dto"
	"libreria/internal/model"
	"libreria/internal/repository"

	"gorm.io/gorm"
)

type LibroService interface {
	Crear(ctx context.Context, req dto.CrearLibroRequest) (*dto.LibroResponse, error)
	Obtener(ctx context.Context, id uint) (*dto.LibroResponse, error)
	Listar(ctx context.Context, q string) ([]dto.LibroResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarLibroRequest) (*dto.LibroResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type libroService struct {
	repo       repository.LibroRepository
	inventario repository.InventarioRepository
}

func NewLibroService(repo repository.LibroRepository, inventario repository.InventarioRepository) LibroService {
	return &libroService{repo: repo, inventario: inventario}
}

func (s *libroService) Crear(ctx context.Context, req dto.CrearLibroRequest) (*dto.LibroResponse, error) {
	libro := &model.Libro{
		Nombre:      req.Nombre,
		Autor:       req.Autor,
		Precio:      req.Precio,
		StockMinimo: 5,
	}
	if req.StockMinimo != nil {
		libro.StockMinimo = *req.StockMinimo
	}
	if err := s.repo.Create(ctx, libro); err != nil {
		return nil, err
	}
	return libroToResponse(libro), nil
}

func (s *libroService) Obtener(ctx context.Context, id uint) (*dto.LibroResponse, error) {
	libro, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("libro %d: %w", id, apierror.ErrNoEncontrado)
	}
	return libroToResponse(libro), nil
}

func (s *libroService) Listar(ctx context.Context, q string) ([]dto.LibroResponse, error) {
	libros, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LibroResponse, len(libros))
	for i := range libros {
		resp[i] = *libroToResponse(&libros[i])
	}
	return resp, nil
}

func (s *libroService) Actualizar(ctx context.Context, id uint, req dto.ActualizarLibroRequest) (*dto.LibroResponse, error) {
	libro, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("libro %d: %w", id, apierror.ErrNoEncontrado)
	}
	if req.Nombre != "" {
		libro.Nombre = req.Nombre
	}
	if req.Autor != "" {
		libro.Autor = req.Autor
	}
	if req.Precio != nil {
		libro.Precio = *req.Precio
	}
	if req.StockMinimo != nil {
		libro.StockMinimo = *req.StockMinimo
	}
	if err := s.repo.Update(ctx, libro); err != nil {
		return nil, err
	}
	return libroToResponse(libro), nil
}

func (s *libroService) Eliminar(ctx context.Context, id uint) error {
	n, err := s.inventario.CountByLibro(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("el libro tiene %d filas de inventario: %w", n, apierror.ErrConflicto)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("libro %d: %w", id, apierror.ErrNoEncontrado)
		}
		return err
	}
	return nil
}

func libroToResponse(l *model.Libro) *dto.LibroResponse {
	return &dto.LibroResponse{
		ID:          l.ID,
		Nombre:      l.Nombre,
		Autor:       l.Autor,
		Precio:      l.Precio,
		StockMinimo: l.StockMinimo,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}
