package service

import (
	"context"

	"libreria/internal/dto"
	"libreria/internal/model"
	"libreria/internal/repository"
	"libreria/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// VentaService is the audited entry point for point-of-sale transactions:
// one sale decrements one inventario row by exactly one unit, atomically.
// Concurrent sales on the same row serialize at the database (conditional
// UPDATE in the repository); sales on different rows never block each other.
type VentaService interface {
	RegistrarVenta(ctx context.Context, inventarioID uint, usuarioID *uint) (*dto.InventarioResponse, error)
}

type ventaService struct {
	inventario  repository.InventarioRepository
	movimientos repository.MovimientoStockRepository
	dispatcher  *worker.Dispatcher // nil = notifications disabled (unit tests)
}

func NewVentaService(
	inventario repository.InventarioRepository,
	movimientos repository.MovimientoStockRepository,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{inventario: inventario, movimientos: movimientos, dispatcher: dispatcher}
}

func (s *ventaService) RegistrarVenta(ctx context.Context, inventarioID uint, usuarioID *uint) (*dto.InventarioResponse, error) {
	txErr := runTx(ctx, s.inventario.DB(), func(tx *gorm.DB) error {
		inv, err := s.inventario.AjustarStockTx(tx, inventarioID, -1)
		if err != nil {
			return err
		}
		return s.movimientos.CreateTx(tx, &model.MovimientoStock{
			InventarioID:  inventarioID,
			Tipo:          model.MovimientoVenta,
			Cantidad:      1,
			StockAnterior: inv.Stock + 1,
			StockNuevo:    inv.Stock,
			UsuarioID:     usuarioID,
			Observaciones: "Venta unitaria",
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	inv, err := s.inventario.FindByID(ctx, inventarioID)
	if err != nil {
		return nil, err
	}

	// Post-commit, best effort: if the sale left the row at or below its
	// threshold, hand the alert to the async notifier. A queue failure never
	// fails the sale.
	if s.dispatcher != nil && inv.StockBajo() {
		alerta := worker.AlertaStockPayload{
			InventarioID: inv.ID,
			Stock:        inv.Stock,
			StockMinimo:  inv.StockMinimo,
		}
		if inv.Libro != nil {
			alerta.Libro = inv.Libro.Nombre
		}
		if inv.PuntoVenta != nil {
			alerta.PuntoVenta = inv.PuntoVenta.Nombre
		}
		if err := s.dispatcher.EnqueueAlertaStock(ctx, alerta); err != nil {
			log.Warn().Err(err).Uint("inventario_id", inv.ID).
				Msg("no se pudo encolar la alerta de stock bajo")
		}
	}

	return inventarioToResponse(inv), nil
}
