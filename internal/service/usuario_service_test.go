package service

import (
	"context"
	"testing"

	"libreria/internal/apierror"
	"libreria/internal/config"
	"libreria/internal/dto"
	"libreria/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "secreto-de-prueba", JWTExpirationHours: 1}
}

func newUsuarioFixture() (UsuarioService, *stubUsuarioRepo, *stubPuntoVentaRepo) {
	usuarios := newStubUsuarioRepo()
	pvs := newStubPuntoVentaRepo()
	return NewUsuarioService(usuarios, pvs, testConfig()), usuarios, pvs
}

func strPtr(s string) *string { return &s }

func TestCrearVendedorRequierePuntoVenta(t *testing.T) {
	svc, _, _ := newUsuarioFixture()

	_, err := svc.Crear(context.Background(), dto.CrearUsuarioRequest{
		Nombre:     "Laura Gómez",
		Contrasena: "secreto123",
		Rol:        model.RolVendedor,
	})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestCrearVendedorPuntoVentaInexistente(t *testing.T) {
	svc, _, _ := newUsuarioFixture()

	pvID := uint(99)
	_, err := svc.Crear(context.Background(), dto.CrearUsuarioRequest{
		Nombre:       "Laura Gómez",
		Contrasena:   "secreto123",
		Rol:          model.RolVendedor,
		PuntoVentaID: &pvID,
	})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestCrearAdminNoAdmitePuntoVenta(t *testing.T) {
	svc, _, pvs := newUsuarioFixture()
	pv := seedPuntoVenta(pvs, "Centro", "tienda")

	_, err := svc.Crear(context.Background(), dto.CrearUsuarioRequest{
		Nombre:       "Root",
		Contrasena:   "secreto123",
		Rol:          model.RolAdmin,
		PuntoVentaID: &pv.ID,
	})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestCrearVendedorValido(t *testing.T) {
	svc, usuarios, pvs := newUsuarioFixture()
	pv := seedPuntoVenta(pvs, "Centro", "tienda")

	resp, err := svc.Crear(context.Background(), dto.CrearUsuarioRequest{
		Nombre:       "Laura Gómez",
		Email:        strPtr("laura@libreria.local"),
		Contrasena:   "secreto123",
		Rol:          model.RolVendedor,
		PuntoVentaID: &pv.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RolVendedor, resp.Rol)
	require.NotNil(t, resp.PuntoVentaID)
	assert.Equal(t, pv.ID, *resp.PuntoVentaID)

	// The stored credential is a bcrypt hash, never the plaintext
	stored := usuarios.users[resp.ID]
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestEmailDuplicadoConflicto(t *testing.T) {
	svc, _, _ := newUsuarioFixture()

	_, err := svc.Crear(context.Background(), dto.CrearUsuarioRequest{
		Nombre: "Uno", Email: strPtr("repetido@libreria.local"),
		Contrasena: "secreto123", Rol: model.RolAdmin,
	})
	require.NoError(t, err)

	_, err = svc.Crear(context.Background(), dto.CrearUsuarioRequest{
		Nombre: "Dos", Email: strPtr("Repetido@libreria.local"),
		Contrasena: "secreto123", Rol: model.RolAdmin,
	})
	assert.ErrorIs(t, err, apierror.ErrConflicto)
}

func TestActualizarRevalidaRolContraEstadoFinal(t *testing.T) {
	svc, _, pvs := newUsuarioFixture()
	pv := seedPuntoVenta(pvs, "Centro", "tienda")

	resp, err := svc.Crear(context.Background(), dto.CrearUsuarioRequest{
		Nombre: "Laura", Contrasena: "secreto123",
		Rol: model.RolVendedor, PuntoVentaID: &pv.ID,
	})
	require.NoError(t, err)

	// Promoting to admin while the PV assignment survives must fail
	_, err = svc.Actualizar(context.Background(), resp.ID, dto.ActualizarUsuarioRequest{
		Rol: model.RolAdmin,
	})
	assert.ErrorIs(t, err, apierror.ErrValidacion)

	// Clearing the PV in the same patch makes it valid
	updated, err := svc.Actualizar(context.Background(), resp.ID, dto.ActualizarUsuarioRequest{
		Rol:              model.RolAdmin,
		QuitarPuntoVenta: true,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RolAdmin, updated.Rol)
	assert.Nil(t, updated.PuntoVentaID)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newUsuarioFixture()

	_, err := svc.Crear(context.Background(), dto.CrearUsuarioRequest{
		Nombre: "Root", Email: strPtr("root@libreria.local"),
		Contrasena: "secreto123", Rol: model.RolAdmin,
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "root@libreria.local", Contrasena: "secreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RolAdmin, resp.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "root@libreria.local", Contrasena: "incorrecta",
	})
	assert.ErrorIs(t, err, apierror.ErrCredenciales)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@libreria.local", Contrasena: "secreto123",
	})
	assert.ErrorIs(t, err, apierror.ErrCredenciales)
}

func TestListarFiltraPorNombreYEmail(t *testing.T) {
	svc, _, _ := newUsuarioFixture()

	for _, u := range []dto.CrearUsuarioRequest{
		{Nombre: "Ana Pérez", Email: strPtr("ana@libreria.local"), Contrasena: "secreto1", Rol: model.RolAdmin},
		{Nombre: "Benito Díaz", Email: strPtr("benito@libreria.local"), Contrasena: "secreto2", Rol: model.RolAdmin},
	} {
		_, err := svc.Crear(context.Background(), u)
		require.NoError(t, err)
	}

	todos, err := svc.Listar(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	soloAna, err := svc.Listar(context.Background(), "ana")
	require.NoError(t, err)
	require.Len(t, soloAna, 1)
	assert.Equal(t, "Ana Pérez", soloAna[0].Nombre)
}

func TestEliminarUsuarioInexistente(t *testing.T) {
	svc, _, _ := newUsuarioFixture()
	err := svc.Eliminar(context.Background(), 42)
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}
