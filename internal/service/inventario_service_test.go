package service

import (
	"context"
	"testing"

	"libreria/internal/apierror"
	"libreria/internal/dto"
	"libreria/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventarioFixture struct {
	svc         InventarioService
	pvs         *stubPuntoVentaRepo
	libros      *stubLibroRepo
	usuarios    *stubUsuarioRepo
	inventario  *stubInventarioRepo
	movimientos *stubMovimientoRepo
}

func newInventarioFixture() *inventarioFixture {
	pvs := newStubPuntoVentaRepo()
	libros := newStubLibroRepo()
	usuarios := newStubUsuarioRepo()
	inventario := newStubInventarioRepo(libros, pvs)
	movimientos := newStubMovimientoRepo()
	svc := NewInventarioService(inventario, libros, pvs, usuarios, movimientos, "")
	return &inventarioFixture{
		svc: svc, pvs: pvs, libros: libros, usuarios: usuarios,
		inventario: inventario, movimientos: movimientos,
	}
}

func TestCrearInventarioHeredaUmbralDelLibro(t *testing.T) {
	f := newInventarioFixture()
	pv := seedPuntoVenta(f.pvs, "Centro", "tienda")
	libro := seedLibro(f.libros, "Cien años de soledad", "Gabriel García Márquez", 7)

	resp, err := f.svc.Crear(context.Background(), dto.CrearInventarioRequest{
		LibroID: libro.ID, PuntoVentaID: pv.ID, Stock: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.StockMinimo)
	assert.Equal(t, 20, resp.Stock)
	assert.Equal(t, "Cien años de soledad", resp.Libro)
	assert.Equal(t, "Centro", resp.PuntoVenta)
}

func TestCrearInventarioDuplicadoPorPar(t *testing.T) {
	f := newInventarioFixture()
	pv := seedPuntoVenta(f.pvs, "Centro", "tienda")
	libro := seedLibro(f.libros, "Rayuela", "Julio Cortázar", 5)
	seedInventario(f.inventario, libro.ID, pv.ID, 5, 5)

	_, err := f.svc.Crear(context.Background(), dto.CrearInventarioRequest{
		LibroID: libro.ID, PuntoVentaID: pv.ID, Stock: 1,
	})
	assert.ErrorIs(t, err, apierror.ErrConflicto)
}

func TestCrearInventarioReferenciasInexistentes(t *testing.T) {
	f := newInventarioFixture()
	pv := seedPuntoVenta(f.pvs, "Centro", "tienda")
	libro := seedLibro(f.libros, "Rayuela", "Julio Cortázar", 5)

	_, err := f.svc.Crear(context.Background(), dto.CrearInventarioRequest{
		LibroID: 99, PuntoVentaID: pv.ID, Stock: 1,
	})
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)

	_, err = f.svc.Crear(context.Background(), dto.CrearInventarioRequest{
		LibroID: libro.ID, PuntoVentaID: 99, Stock: 1,
	})
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}

func TestListarInventarioFiltraPorPuntoVenta(t *testing.T) {
	f := newInventarioFixture()
	centro := seedPuntoVenta(f.pvs, "Centro", "tienda")
	norte := seedPuntoVenta(f.pvs, "Norte", "metro")
	libro := seedLibro(f.libros, "Rayuela", "Julio Cortázar", 5)
	seedInventario(f.inventario, libro.ID, centro.ID, 5, 5)
	seedInventario(f.inventario, libro.ID, norte.ID, 9, 5)

	todos, err := f.svc.Listar(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	soloNorte, err := f.svc.Listar(context.Background(), &norte.ID)
	require.NoError(t, err)
	require.Len(t, soloNorte, 1)
	assert.Equal(t, 9, soloNorte[0].Stock)

	desconocido := uint(99)
	_, err = f.svc.Listar(context.Background(), &desconocido)
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}

func TestAjustarStockRegistraMovimiento(t *testing.T) {
	f := newInventarioFixture()
	pv := seedPuntoVenta(f.pvs, "Centro", "tienda")
	libro := seedLibro(f.libros, "Rayuela", "Julio Cortázar", 5)
	inv := seedInventario(f.inventario, libro.ID, pv.ID, 10, 5)

	resp, err := f.svc.AjustarStock(context.Background(), inv.ID, dto.AjusteStockRequest{
		Delta: 15, Observaciones: "Reposición semanal",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, resp.Stock)

	require.Len(t, f.movimientos.movs, 1)
	mov := f.movimientos.movs[0]
	assert.Equal(t, model.MovimientoAjuste, mov.Tipo)
	assert.Equal(t, 15, mov.Cantidad)
	assert.Equal(t, 10, mov.StockAnterior)
	assert.Equal(t, 25, mov.StockNuevo)
}

func TestAjusteNegativoNuncaDejaStockNegativo(t *testing.T) {
	f := newInventarioFixture()
	pv := seedPuntoVenta(f.pvs, "Centro", "tienda")
	libro := seedLibro(f.libros, "Rayuela", "Julio Cortázar", 5)
	inv := seedInventario(f.inventario, libro.ID, pv.ID, 3, 5)

	_, err := f.svc.AjustarStock(context.Background(), inv.ID, dto.AjusteStockRequest{Delta: -4}, nil)
	assert.ErrorIs(t, err, apierror.ErrStockInsuficiente)

	// Nothing changed, nothing was recorded
	got, err := f.svc.Obtener(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
	assert.Empty(t, f.movimientos.movs)
}

func TestFijarStockSinCambioNoRegistraMovimiento(t *testing.T) {
	f := newInventarioFixture()
	pv := seedPuntoVenta(f.pvs, "Centro", "tienda")
	libro := seedLibro(f.libros, "Rayuela", "Julio Cortázar", 5)
	inv := seedInventario(f.inventario, libro.ID, pv.ID, 8, 5)

	resp, err := f.svc.FijarStock(context.Background(), inv.ID, dto.FijarStockRequest{Stock: 8}, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, resp.Stock)
	assert.Empty(t, f.movimientos.movs)

	resp, err = f.svc.FijarStock(context.Background(), inv.ID, dto.FijarStockRequest{Stock: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Stock)
	require.Len(t, f.movimientos.movs, 1)
	assert.Equal(t, 6, f.movimientos.movs[0].Cantidad)
}

func TestRegistrarMovimientoSalidaInsuficiente(t *testing.T) {
	f := newInventarioFixture()
	pv := seedPuntoVenta(f.pvs, "Centro", "tienda")
	libro := seedLibro(f.libros, "Rayuela", "Julio Cortázar", 5)
	inv := seedInventario(f.inventario, libro.ID, pv.ID, 2, 5)

	_, err := f.svc.RegistrarMovimiento(context.Background(), dto.CrearMovimientoRequest{
		InventarioID: inv.ID, Tipo: model.MovimientoSalida, Cantidad: 3,
	})
	assert.ErrorIs(t, err, apierror.ErrStockInsuficiente)
}

func TestRegistrarMovimientoEntrada(t *testing.T) {
	f := newInventarioFixture()
	pv := seedPuntoVenta(f.pvs, "Centro", "tienda")
	libro := seedLibro(f.libros, "Rayuela", "Julio Cortázar", 5)
	inv := seedInventario(f.inventario, libro.ID, pv.ID, 2, 5)

	resp, err := f.svc.RegistrarMovimiento(context.Background(), dto.CrearMovimientoRequest{
		InventarioID: inv.ID, Tipo: model.MovimientoEntrada, Cantidad: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.StockAnterior)
	assert.Equal(t, 8, resp.StockNuevo)
}

func TestRegistrarMovimientoUsuarioInexistente(t *testing.T) {
	f := newInventarioFixture()
	pv := seedPuntoVenta(f.pvs, "Centro", "tienda")
	libro := seedLibro(f.libros, "Rayuela", "Julio Cortázar", 5)
	inv := seedInventario(f.inventario, libro.ID, pv.ID, 2, 5)

	fantasma := uint(31)
	_, err := f.svc.RegistrarMovimiento(context.Background(), dto.CrearMovimientoRequest{
		InventarioID: inv.ID, Tipo: model.MovimientoEntrada, Cantidad: 1, UsuarioID: &fantasma,
	})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestStockBajoIncluyeIgualdadConUmbral(t *testing.T) {
	f := newInventarioFixture()
	pv := seedPuntoVenta(f.pvs, "Centro", "tienda")
	a := seedLibro(f.libros, "Sobrado", "Autor A", 5)
	b := seedLibro(f.libros, "Justo", "Autor B", 5)
	c := seedLibro(f.libros, "Agotado", "Autor C", 5)
	seedInventario(f.inventario, a.ID, pv.ID, 6, 5) // above threshold
	seedInventario(f.inventario, b.ID, pv.ID, 5, 5) // equality counts
	seedInventario(f.inventario, c.ID, pv.ID, 0, 5)

	alertas, err := f.svc.StockBajo(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, alertas, 2)
	assert.Equal(t, "Justo", alertas[0].Libro)
	assert.Equal(t, "Agotado", alertas[1].Libro)
}

func TestStockBajoPuntoVentaInexistente(t *testing.T) {
	f := newInventarioFixture()
	desconocido := uint(99)
	_, err := f.svc.StockBajo(context.Background(), &desconocido)
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}
