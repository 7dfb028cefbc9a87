package service

import (
	"context"

	"libreria/internal/dto"
	"libreria/internal/repository"
)

// MovimientoService reads the stock audit trail. Writes go through
// InventarioService so the stock change and its record share a transaction.
type MovimientoService interface {
	Listar(ctx context.Context, filter dto.MovimientoFilter) (*dto.ListaMovimientosResponse, error)
}

type movimientoService struct {
	repo repository.MovimientoStockRepository
}

func NewMovimientoService(repo repository.MovimientoStockRepository) MovimientoService {
	return &movimientoService{repo: repo}
}

func (s *movimientoService) Listar(ctx context.Context, filter dto.MovimientoFilter) (*dto.ListaMovimientosResponse, error) {
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoResponse, len(rows))
	for i := range rows {
		items[i] = *movimientoToResponse(&rows[i])
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 500 {
		limit = 100
	}
	return &dto.ListaMovimientosResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}
