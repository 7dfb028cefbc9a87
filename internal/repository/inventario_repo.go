package repository

import (
	"context"
	"errors"

	"libreria/internal/apierror"
	"libreria/internal/model"

	"gorm.io/gorm"
)

// InventarioRepository owns the per-(libro, punto de venta) stock rows.
//
// The *Tx variants run against a caller-supplied transaction so that a stock
// change and its movimiento record commit or roll back together.
type InventarioRepository interface {
	Create(ctx context.Context, inv *model.Inventario) error
	FindByID(ctx context.Context, id uint) (*model.Inventario, error)
	FindByLibroYPV(ctx context.Context, libroID, puntoVentaID uint) (*model.Inventario, error)
	// List returns every stock row, or only those of one punto de venta.
	List(ctx context.Context, puntoVentaID *uint) ([]model.Inventario, error)
	// ListStockBajo returns rows with stock <= stock_minimo — always computed
	// from live state, never cached.
	ListStockBajo(ctx context.Context, puntoVentaID *uint) ([]model.Inventario, error)
	CountByPuntoVenta(ctx context.Context, puntoVentaID uint) (int64, error)
	CountByLibro(ctx context.Context, libroID uint) (int64, error)

	// FindByIDTx reads a row inside an open transaction (movement bookkeeping).
	FindByIDTx(tx *gorm.DB, id uint) (*model.Inventario, error)
	// AjustarStockTx applies a signed delta as a single conditional UPDATE.
	// A negative delta that would leave stock < 0 touches nothing and returns
	// apierror.ErrStockInsuficiente; unknown id returns apierror.ErrNoEncontrado.
	// The returned row reflects the post-update state.
	AjustarStockTx(tx *gorm.DB, id uint, delta int) (*model.Inventario, error)
	FijarStockTx(tx *gorm.DB, id uint, stock int) (*model.Inventario, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository { return &inventarioRepo{db: db} }

func (r *inventarioRepo) Create(ctx context.Context, inv *model.Inventario) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *inventarioRepo) FindByID(ctx context.Context, id uint) (*model.Inventario, error) {
	var inv model.Inventario
	err := r.db.WithContext(ctx).
		Preload("Libro").Preload("PuntoVenta").
		First(&inv, id).Error
	return &inv, err
}

func (r *inventarioRepo) FindByLibroYPV(ctx context.Context, libroID, puntoVentaID uint) (*model.Inventario, error) {
	var inv model.Inventario
	err := r.db.WithContext(ctx).
		Where("libro_id = ? AND punto_venta_id = ?", libroID, puntoVentaID).
		First(&inv).Error
	return &inv, err
}

func (r *inventarioRepo) List(ctx context.Context, puntoVentaID *uint) ([]model.Inventario, error) {
	rows := make([]model.Inventario, 0)
	q := r.db.WithContext(ctx).
		Preload("Libro").Preload("PuntoVenta").
		Order("id ASC")
	if puntoVentaID != nil {
		q = q.Where("punto_venta_id = ?", *puntoVentaID)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *inventarioRepo) ListStockBajo(ctx context.Context, puntoVentaID *uint) ([]model.Inventario, error) {
	rows := make([]model.Inventario, 0)
	q := r.db.WithContext(ctx).
		Preload("Libro").Preload("PuntoVenta").
		Where("stock <= stock_minimo").
		Order("id ASC")
	if puntoVentaID != nil {
		q = q.Where("punto_venta_id = ?", *puntoVentaID)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *inventarioRepo) CountByPuntoVenta(ctx context.Context, puntoVentaID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Inventario{}).
		Where("punto_venta_id = ?", puntoVentaID).Count(&n).Error
	return n, err
}

func (r *inventarioRepo) CountByLibro(ctx context.Context, libroID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Inventario{}).
		Where("libro_id = ?", libroID).Count(&n).Error
	return n, err
}

func (r *inventarioRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Inventario, error) {
	var inv model.Inventario
	if err := tx.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNoEncontrado
		}
		return nil, err
	}
	return &inv, nil
}

// AjustarStockTx is the one concurrency-critical write. The WHERE clause makes
// the decrement conditional on sufficient stock, so two racing sales on the
// same row serialize at the database and the loser's UPDATE matches zero rows.
// No service-wide lock: rows of different items never contend.
func (r *inventarioRepo) AjustarStockTx(tx *gorm.DB, id uint, delta int) (*model.Inventario, error) {
	q := tx.Model(&model.Inventario{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where("stock >= ?", -delta)
	}
	res := q.Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the row does not exist or the guard rejected the decrement.
		var inv model.Inventario
		if err := tx.First(&inv, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.ErrNoEncontrado
			}
			return nil, err
		}
		return nil, apierror.ErrStockInsuficiente
	}

	var inv model.Inventario
	if err := tx.First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventarioRepo) FijarStockTx(tx *gorm.DB, id uint, stock int) (*model.Inventario, error) {
	res := tx.Model(&model.Inventario{}).Where("id = ?", id).Update("stock", stock)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apierror.ErrNoEncontrado
	}
	var inv model.Inventario
	if err := tx.First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventarioRepo) DB() *gorm.DB { return r.db }
