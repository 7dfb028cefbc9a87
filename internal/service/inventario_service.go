package service

import (
	"context"
	"fmt"
	"time"

	"libreria/internal/apierror"
	"libreria/internal/dto"
	"libreria/internal/infra"
	"libreria/internal/model"
	"libreria/internal/repository"

	"gorm.io/gorm"
)

// InventarioService is the stock ledger: per-punto-de-venta rows, signed
// adjustments that can never leave stock negative, and the derived low-stock
// alert view.
type InventarioService interface {
	Crear(ctx context.Context, req dto.CrearInventarioRequest) (*dto.InventarioResponse, error)
	Obtener(ctx context.Context, id uint) (*dto.InventarioResponse, error)
	Listar(ctx context.Context, puntoVentaID *uint) ([]dto.InventarioResponse, error)
	AjustarStock(ctx context.Context, id uint, req dto.AjusteStockRequest, usuarioID *uint) (*dto.InventarioResponse, error)
	FijarStock(ctx context.Context, id uint, req dto.FijarStockRequest, usuarioID *uint) (*dto.InventarioResponse, error)
	RegistrarMovimiento(ctx context.Context, req dto.CrearMovimientoRequest) (*dto.MovimientoResponse, error)
	// StockBajo is the alert view: every row with stock <= stock_minimo,
	// recomputed from live inventario state on each call.
	StockBajo(ctx context.Context, puntoVentaID *uint) ([]dto.AlertaStockResponse, error)
	// ReporteStockBajoPDF renders the alert view as a PDF and returns its path.
	ReporteStockBajoPDF(ctx context.Context, puntoVentaID *uint) (string, error)
}

type inventarioService struct {
	repo        repository.InventarioRepository
	libros      repository.LibroRepository
	puntosVenta repository.PuntoVentaRepository
	usuarios    repository.UsuarioRepository
	movimientos repository.MovimientoStockRepository
	pdfPath     string
}

func NewInventarioService(
	repo repository.InventarioRepository,
	libros repository.LibroRepository,
	puntosVenta repository.PuntoVentaRepository,
	usuarios repository.UsuarioRepository,
	movimientos repository.MovimientoStockRepository,
	pdfPath string,
) InventarioService {
	return &inventarioService{
		repo:        repo,
		libros:      libros,
		puntosVenta: puntosVenta,
		usuarios:    usuarios,
		movimientos: movimientos,
		pdfPath:     pdfPath,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *inventarioService) Crear(ctx context.Context, req dto.CrearInventarioRequest) (*dto.InventarioResponse, error) {
	libro, err := s.libros.FindByID(ctx, req.LibroID)
	if err != nil {
		return nil, fmt.Errorf("libro %d: %w", req.LibroID, apierror.ErrNoEncontrado)
	}
	if _, err := s.puntosVenta.FindByID(ctx, req.PuntoVentaID); err != nil {
		return nil, fmt.Errorf("punto de venta %d: %w", req.PuntoVentaID, apierror.ErrNoEncontrado)
	}
	if _, err := s.repo.FindByLibroYPV(ctx, req.LibroID, req.PuntoVentaID); err == nil {
		return nil, fmt.Errorf("el libro ya tiene inventario en ese punto de venta: %w", apierror.ErrConflicto)
	}

	inv := &model.Inventario{
		LibroID:      req.LibroID,
		PuntoVentaID: req.PuntoVentaID,
		Stock:        req.Stock,
		StockMinimo:  libro.StockMinimo,
	}
	if req.StockMinimo != nil {
		inv.StockMinimo = *req.StockMinimo
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			return s.repo.Create(ctx, inv)
		}
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		if inv.Stock > 0 {
			return s.movimientos.CreateTx(tx, &model.MovimientoStock{
				InventarioID:  inv.ID,
				Tipo:          model.MovimientoEntrada,
				Cantidad:      inv.Stock,
				StockAnterior: 0,
				StockNuevo:    inv.Stock,
				Observaciones: "Asignación inicial de stock",
			})
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Obtener(ctx, inv.ID)
}

func (s *inventarioService) Obtener(ctx context.Context, id uint) (*dto.InventarioResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inventario %d: %w", id, apierror.ErrNoEncontrado)
	}
	return inventarioToResponse(inv), nil
}

func (s *inventarioService) Listar(ctx context.Context, puntoVentaID *uint) ([]dto.InventarioResponse, error) {
	if puntoVentaID != nil {
		ok, err := s.puntosVenta.Exists(ctx, *puntoVentaID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("punto de venta %d: %w", *puntoVentaID, apierror.ErrNoEncontrado)
		}
	}
	rows, err := s.repo.List(ctx, puntoVentaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.InventarioResponse, len(rows))
	for i := range rows {
		resp[i] = *inventarioToResponse(&rows[i])
	}
	return resp, nil
}

// AjustarStock applies the delta and its audit row in one transaction.
// A delta that would leave the row negative changes nothing — no partial
// application, no clamping.
func (s *inventarioService) AjustarStock(ctx context.Context, id uint, req dto.AjusteStockRequest, usuarioID *uint) (*dto.InventarioResponse, error) {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		inv, err := s.repo.AjustarStockTx(tx, id, req.Delta)
		if err != nil {
			return err
		}
		return s.movimientos.CreateTx(tx, &model.MovimientoStock{
			InventarioID:  id,
			Tipo:          model.MovimientoAjuste,
			Cantidad:      abs(req.Delta),
			StockAnterior: inv.Stock - req.Delta,
			StockNuevo:    inv.Stock,
			UsuarioID:     usuarioID,
			Observaciones: req.Observaciones,
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, id)
}

func (s *inventarioService) FijarStock(ctx context.Context, id uint, req dto.FijarStockRequest, usuarioID *uint) (*dto.InventarioResponse, error) {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		antes, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return err
		}
		inv, err := s.repo.FijarStockTx(tx, id, req.Stock)
		if err != nil {
			return err
		}
		if antes.Stock == inv.Stock {
			return nil
		}
		return s.movimientos.CreateTx(tx, &model.MovimientoStock{
			InventarioID:  id,
			Tipo:          model.MovimientoAjuste,
			Cantidad:      abs(inv.Stock - antes.Stock),
			StockAnterior: antes.Stock,
			StockNuevo:    inv.Stock,
			UsuarioID:     usuarioID,
			Observaciones: "Stock fijado a valor absoluto",
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, id)
}

// RegistrarMovimiento is the generic audit entry point: entrada/ajuste add
// stock, salida/venta subtract it. The stock change and the record commit
// together.
func (s *inventarioService) RegistrarMovimiento(ctx context.Context, req dto.CrearMovimientoRequest) (*dto.MovimientoResponse, error) {
	if req.UsuarioID != nil {
		if _, err := s.usuarios.FindByID(ctx, *req.UsuarioID); err != nil {
			return nil, fmt.Errorf("usuario %d no existe: %w", *req.UsuarioID, apierror.ErrValidacion)
		}
	}

	delta := req.Cantidad
	if req.Tipo == model.MovimientoSalida || req.Tipo == model.MovimientoVenta {
		delta = -req.Cantidad
	}

	var mov model.MovimientoStock
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		inv, err := s.repo.AjustarStockTx(tx, req.InventarioID, delta)
		if err != nil {
			return err
		}
		mov = model.MovimientoStock{
			InventarioID:  req.InventarioID,
			Tipo:          req.Tipo,
			Cantidad:      req.Cantidad,
			StockAnterior: inv.Stock - delta,
			StockNuevo:    inv.Stock,
			UsuarioID:     req.UsuarioID,
			Observaciones: req.Observaciones,
		}
		return s.movimientos.CreateTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	return movimientoToResponse(&mov), nil
}

func (s *inventarioService) StockBajo(ctx context.Context, puntoVentaID *uint) ([]dto.AlertaStockResponse, error) {
	if puntoVentaID != nil {
		ok, err := s.puntosVenta.Exists(ctx, *puntoVentaID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("punto de venta %d: %w", *puntoVentaID, apierror.ErrNoEncontrado)
		}
	}
	rows, err := s.repo.ListStockBajo(ctx, puntoVentaID)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaStockResponse, len(rows))
	for i := range rows {
		alertas[i] = *alertaToResponse(&rows[i])
	}
	return alertas, nil
}

func (s *inventarioService) ReporteStockBajoPDF(ctx context.Context, puntoVentaID *uint) (string, error) {
	if puntoVentaID != nil {
		ok, err := s.puntosVenta.Exists(ctx, *puntoVentaID)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("punto de venta %d: %w", *puntoVentaID, apierror.ErrNoEncontrado)
		}
	}
	rows, err := s.repo.ListStockBajo(ctx, puntoVentaID)
	if err != nil {
		return "", err
	}
	return infra.GenerateReporteStockBajo(rows, s.pdfPath)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func inventarioToResponse(inv *model.Inventario) *dto.InventarioResponse {
	resp := &dto.InventarioResponse{
		ID:           inv.ID,
		LibroID:      inv.LibroID,
		PuntoVentaID: inv.PuntoVentaID,
		Stock:        inv.Stock,
		StockMinimo:  inv.StockMinimo,
	}
	if inv.Libro != nil {
		resp.Libro = inv.Libro.Nombre
	}
	if inv.PuntoVenta != nil {
		resp.PuntoVenta = inv.PuntoVenta.Nombre
	}
	return resp
}

func alertaToResponse(inv *model.Inventario) *dto.AlertaStockResponse {
	a := &dto.AlertaStockResponse{
		InventarioID: inv.ID,
		Stock:        inv.Stock,
		StockMinimo:  inv.StockMinimo,
	}
	if inv.Libro != nil {
		a.Libro = inv.Libro.Nombre
	}
	if inv.PuntoVenta != nil {
		a.PuntoVenta = inv.PuntoVenta.Nombre
	}
	return a
}

func movimientoToResponse(m *model.MovimientoStock) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:            m.ID,
		InventarioID:  m.InventarioID,
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		UsuarioID:     m.UsuarioID,
		Observaciones: m.Observaciones,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}
