package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libreria/internal/apierror"
	"libreria/internal/config"
	"libreria/internal/dto"
	"libreria/internal/model"
	"libreria/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UsuarioService owns user lifecycle and login.
//
// Invariant enforced on every write, no matter which fields changed:
// a vendedor always references exactly one existing punto de venta,
// an admin never references one.
type UsuarioService interface {
	Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	Obtener(ctx context.Context, id uint) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context, q string) ([]dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	Eliminar(ctx context.Context, id uint) error
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type usuarioService struct {
	repo        repository.UsuarioRepository
	puntosVenta repository.PuntoVentaRepository
	cfg         *config.Config
}

func NewUsuarioService(repo repository.UsuarioRepository, puntosVenta repository.PuntoVentaRepository, cfg *config.Config) UsuarioService {
	return &usuarioService{repo: repo, puntosVenta: puntosVenta, cfg: cfg}
}

// validarRolPuntoVenta checks the rol / punto_venta pairing against live state.
func (s *usuarioService) validarRolPuntoVenta(ctx context.Context, rol string, puntoVentaID *uint) error {
	switch rol {
	case model.RolVendedor:
		if puntoVentaID == nil {
			return fmt.Errorf("un vendedor requiere punto_venta_id: %w", apierror.ErrValidacion)
		}
		ok, err := s.puntosVenta.Exists(ctx, *puntoVentaID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("punto de venta %d no existe: %w", *puntoVentaID, apierror.ErrValidacion)
		}
	case model.RolAdmin:
		if puntoVentaID != nil {
			return fmt.Errorf("un admin no puede tener punto_venta_id: %w", apierror.ErrValidacion)
		}
	default:
		return fmt.Errorf("rol desconocido %q: %w", rol, apierror.ErrValidacion)
	}
	return nil
}

func (s *usuarioService) emailDisponible(ctx context.Context, email string, excluirID uint) error {
	existente, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existente.ID != excluirID {
		return fmt.Errorf("el email ya está registrado: %w", apierror.ErrConflicto)
	}
	return nil
}

func (s *usuarioService) Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	if err := s.validarRolPuntoVenta(ctx, req.Rol, req.PuntoVentaID); err != nil {
		return nil, err
	}
	if req.Email != nil {
		if err := s.emailDisponible(ctx, *req.Email, 0); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Contrasena), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		PuntoVentaID: req.PuntoVentaID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return usuarioToResponse(user), nil
}

func (s *usuarioService) Obtener(ctx context.Context, id uint) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usuario %d: %w", id, apierror.ErrNoEncontrado)
	}
	return usuarioToResponse(user), nil
}

func (s *usuarioService) Listar(ctx context.Context, q string) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = *usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *usuarioService) Actualizar(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usuario %d: %w", id, apierror.ErrNoEncontrado)
	}

	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.Email != nil {
		if err := s.emailDisponible(ctx, *req.Email, id); err != nil {
			return nil, err
		}
		user.Email = req.Email
	}
	if req.Rol != "" {
		user.Rol = req.Rol
	}
	if req.PuntoVentaID != nil {
		user.PuntoVentaID = req.PuntoVentaID
	}
	if req.QuitarPuntoVenta {
		user.PuntoVentaID = nil
	}
	if req.Contrasena != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Contrasena), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	// Re-check the pairing against the merged record, whatever was patched.
	if err := s.validarRolPuntoVenta(ctx, user.Rol, user.PuntoVentaID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return usuarioToResponse(user), nil
}

func (s *usuarioService) Eliminar(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("usuario %d: %w", id, apierror.ErrNoEncontrado)
		}
		return err
	}
	return nil
}

func (s *usuarioService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apierror.ErrCredenciales
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Contrasena)); err != nil {
		return nil, apierror.ErrCredenciales
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Message:      "Inicio de sesión exitoso",
		Role:         user.Rol,
		PuntoVentaID: user.PuntoVentaID,
		AccessToken:  token,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
	}, nil
}

func (s *usuarioService) generateToken(user *model.Usuario) (string, error) {
	claims := jwt.MapClaims{
		"user_id":        user.ID,
		"rol":            user.Rol,
		"punto_venta_id": user.PuntoVentaID,
		"exp":            time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":            time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:           u.ID,
		Nombre:       u.Nombre,
		Email:        u.Email,
		Rol:          u.Rol,
		PuntoVentaID: u.PuntoVentaID,
	}
}
