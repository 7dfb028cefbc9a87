package repository

import (
	"context"

	"libreria/internal/model"

	"gorm.io/gorm"
)

type LibroRepository interface {
	Create(ctx context.Context, l *model.Libro) error
	FindByID(ctx context.Context, id uint) (*model.Libro, error)
	// List filters by case-insensitive substring on nombre when q is set.
	List(ctx context.Context, q string) ([]model.Libro, error)
	Update(ctx context.Context, l *model.Libro) error
	Delete(ctx context.Context, id uint) error
}

type libroRepo struct{ db *gorm.DB }

func NewLibroRepository(db *gorm.DB) LibroRepository { return &libroRepo{db: db} }

func (r *libroRepo) Create(ctx context.Context, l *model.Libro) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *libroRepo) FindByID(ctx context.Context, id uint) (*model.Libro, error) {
	var l model.Libro
	err := r.db.WithContext(ctx).First(&l, id).Error
	return &l, err
}

func (r *libroRepo) List(ctx context.Context, q string) ([]model.Libro, error) {
	libros := make([]model.Libro, 0)
	query := r.db.WithContext(ctx).Model(&model.Libro{})
	if q != "" {
		query = query.Where("nombre ILIKE ?", "%"+q+"%")
	}
	err := query.Order("id ASC").Find(&libros).Error
	return libros, err
}

func (r *libroRepo) Update(ctx context.Context, l *model.Libro) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *libroRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Libro{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
