package repository

import (
	"context"

	"libreria/internal/model"

	"gorm.io/gorm"
)

// UsuarioRepository defines the data access contract for users.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	// Search lists users in insertion order; q filters by case-insensitive
	// substring match on nombre or email, empty q returns everything.
	Search(ctx context.Context, q string) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
	// Delete is a hard delete — the record is gone, no soft-delete flag.
	Delete(ctx context.Context, id uint) error
	CountByPuntoVenta(ctx context.Context, puntoVentaID uint) (int64, error)
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&u).Error
	return &u, err
}

func (r *usuarioRepo) Search(ctx context.Context, q string) ([]model.Usuario, error) {
	users := make([]model.Usuario, 0)
	query := r.db.WithContext(ctx).Model(&model.Usuario{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("nombre ILIKE ? OR email ILIKE ?", like, like)
	}
	err := query.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Usuario{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *usuarioRepo) CountByPuntoVenta(ctx context.Context, puntoVentaID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("punto_venta_id = ?", puntoVentaID).Count(&n).Error
	return n, err
}
