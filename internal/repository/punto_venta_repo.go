package repository

import (
	"context"

	"libreria/internal/model"

	"gorm.io/gorm"
)

type PuntoVentaRepository interface {
	Create(ctx context.Context, pv *model.PuntoVenta) error
	FindByID(ctx context.Context, id uint) (*model.PuntoVenta, error)
	List(ctx context.Context) ([]model.PuntoVenta, error)
	Update(ctx context.Context, pv *model.PuntoVenta) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type puntoVentaRepo struct{ db *gorm.DB }

func NewPuntoVentaRepository(db *gorm.DB) PuntoVentaRepository { return &puntoVentaRepo{db: db} }

func (r *puntoVentaRepo) Create(ctx context.Context, pv *model.PuntoVenta) error {
	return r.db.WithContext(ctx).Create(pv).Error
}

func (r *puntoVentaRepo) FindByID(ctx context.Context, id uint) (*model.PuntoVenta, error) {
	var pv model.PuntoVenta
	err := r.db.WithContext(ctx).First(&pv, id).Error
	return &pv, err
}

func (r *puntoVentaRepo) List(ctx context.Context) ([]model.PuntoVenta, error) {
	pvs := make([]model.PuntoVenta, 0)
	err := r.db.WithContext(ctx).Order("id ASC").Find(&pvs).Error
	return pvs, err
}

func (r *puntoVentaRepo) Update(ctx context.Context, pv *model.PuntoVenta) error {
	return r.db.WithContext(ctx).Save(pv).Error
}

func (r *puntoVentaRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.PuntoVenta{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *puntoVentaRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.PuntoVenta{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
