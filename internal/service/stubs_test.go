package service

import (
	"context"
	"strings"
	"sync"

	"libreria/internal/apierror"
	"libreria/internal/dto"
	"libreria/internal/model"
	"libreria/internal/repository"

	"gorm.io/gorm"
)

// ── In-memory repository stubs ───────────────────────────────────────────────
// The inventario stub guards its rows with a mutex so the concurrent sale
// tests exercise the same "conditional decrement" contract as the SQL one.

type stubPuntoVentaRepo struct {
	seq uint
	pvs map[uint]*model.PuntoVenta
}

func newStubPuntoVentaRepo() *stubPuntoVentaRepo {
	return &stubPuntoVentaRepo{pvs: make(map[uint]*model.PuntoVenta)}
}

func (r *stubPuntoVentaRepo) Create(_ context.Context, pv *model.PuntoVenta) error {
	r.seq++
	pv.ID = r.seq
	r.pvs[pv.ID] = pv
	return nil
}

func (r *stubPuntoVentaRepo) FindByID(_ context.Context, id uint) (*model.PuntoVenta, error) {
	pv, ok := r.pvs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pv, nil
}

func (r *stubPuntoVentaRepo) List(_ context.Context) ([]model.PuntoVenta, error) {
	out := make([]model.PuntoVenta, 0, len(r.pvs))
	for id := uint(1); id <= r.seq; id++ {
		if pv, ok := r.pvs[id]; ok {
			out = append(out, *pv)
		}
	}
	return out, nil
}

func (r *stubPuntoVentaRepo) Update(_ context.Context, pv *model.PuntoVenta) error {
	r.pvs[pv.ID] = pv
	return nil
}

func (r *stubPuntoVentaRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.pvs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.pvs, id)
	return nil
}

func (r *stubPuntoVentaRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := r.pvs[id]
	return ok, nil
}

var _ repository.PuntoVentaRepository = (*stubPuntoVentaRepo)(nil)

type stubUsuarioRepo struct {
	seq   uint
	users map[uint]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[uint]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.seq++
	u.ID = r.seq
	r.users[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for id := uint(1); id <= r.seq; id++ {
		u, ok := r.users[id]
		if ok && u.Email != nil && strings.EqualFold(*u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) Search(_ context.Context, q string) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.users))
	q = strings.ToLower(q)
	for id := uint(1); id <= r.seq; id++ {
		u, ok := r.users[id]
		if !ok {
			continue
		}
		if q == "" ||
			strings.Contains(strings.ToLower(u.Nombre), q) ||
			(u.Email != nil && strings.Contains(strings.ToLower(*u.Email), q)) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUsuarioRepo) CountByPuntoVenta(_ context.Context, puntoVentaID uint) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.PuntoVentaID != nil && *u.PuntoVentaID == puntoVentaID {
			n++
		}
	}
	return n, nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

type stubLibroRepo struct {
	seq    uint
	libros map[uint]*model.Libro
}

func newStubLibroRepo() *stubLibroRepo {
	return &stubLibroRepo{libros: make(map[uint]*model.Libro)}
}

func (r *stubLibroRepo) Create(_ context.Context, l *model.Libro) error {
	r.seq++
	l.ID = r.seq
	r.libros[l.ID] = l
	return nil
}

func (r *stubLibroRepo) FindByID(_ context.Context, id uint) (*model.Libro, error) {
	l, ok := r.libros[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *stubLibroRepo) List(_ context.Context, q string) ([]model.Libro, error) {
	out := make([]model.Libro, 0, len(r.libros))
	q = strings.ToLower(q)
	for id := uint(1); id <= r.seq; id++ {
		l, ok := r.libros[id]
		if !ok {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(l.Nombre), q) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLibroRepo) Update(_ context.Context, l *model.Libro) error {
	r.libros[l.ID] = l
	return nil
}

func (r *stubLibroRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.libros[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.libros, id)
	return nil
}

var _ repository.LibroRepository = (*stubLibroRepo)(nil)

type stubInventarioRepo struct {
	mu     sync.Mutex
	seq    uint
	rows   map[uint]*model.Inventario
	libros *stubLibroRepo
	pvs    *stubPuntoVentaRepo
}

func newStubInventarioRepo(libros *stubLibroRepo, pvs *stubPuntoVentaRepo) *stubInventarioRepo {
	return &stubInventarioRepo{rows: make(map[uint]*model.Inventario), libros: libros, pvs: pvs}
}

// preload attaches the Libro and PuntoVenta pointers the way GORM Preload does.
func (r *stubInventarioRepo) preload(inv *model.Inventario) *model.Inventario {
	out := *inv
	if r.libros != nil {
		if l, ok := r.libros.libros[inv.LibroID]; ok {
			out.Libro = l
		}
	}
	if r.pvs != nil {
		if pv, ok := r.pvs.pvs[inv.PuntoVentaID]; ok {
			out.PuntoVenta = pv
		}
	}
	return &out
}

func (r *stubInventarioRepo) Create(_ context.Context, inv *model.Inventario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	inv.ID = r.seq
	r.rows[inv.ID] = inv
	return nil
}

func (r *stubInventarioRepo) FindByID(_ context.Context, id uint) (*model.Inventario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.preload(inv), nil
}

func (r *stubInventarioRepo) FindByLibroYPV(_ context.Context, libroID, puntoVentaID uint) (*model.Inventario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.rows {
		if inv.LibroID == libroID && inv.PuntoVentaID == puntoVentaID {
			return r.preload(inv), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInventarioRepo) List(_ context.Context, puntoVentaID *uint) ([]model.Inventario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Inventario, 0, len(r.rows))
	for id := uint(1); id <= r.seq; id++ {
		inv, ok := r.rows[id]
		if !ok {
			continue
		}
		if puntoVentaID != nil && inv.PuntoVentaID != *puntoVentaID {
			continue
		}
		out = append(out, *r.preload(inv))
	}
	return out, nil
}

func (r *stubInventarioRepo) ListStockBajo(_ context.Context, puntoVentaID *uint) ([]model.Inventario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Inventario, 0)
	for id := uint(1); id <= r.seq; id++ {
		inv, ok := r.rows[id]
		if !ok || !inv.StockBajo() {
			continue
		}
		if puntoVentaID != nil && inv.PuntoVentaID != *puntoVentaID {
			continue
		}
		out = append(out, *r.preload(inv))
	}
	return out, nil
}

func (r *stubInventarioRepo) CountByPuntoVenta(_ context.Context, puntoVentaID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, inv := range r.rows {
		if inv.PuntoVentaID == puntoVentaID {
			n++
		}
	}
	return n, nil
}

func (r *stubInventarioRepo) CountByLibro(_ context.Context, libroID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, inv := range r.rows {
		if inv.LibroID == libroID {
			n++
		}
	}
	return n, nil
}

func (r *stubInventarioRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Inventario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.rows[id]
	if !ok {
		return nil, apierror.ErrNoEncontrado
	}
	out := *inv
	return &out, nil
}

// AjustarStockTx mirrors the conditional-UPDATE contract: the guard and the
// write happen under one lock, so concurrent decrements cannot oversell.
func (r *stubInventarioRepo) AjustarStockTx(_ *gorm.DB, id uint, delta int) (*model.Inventario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.rows[id]
	if !ok {
		return nil, apierror.ErrNoEncontrado
	}
	if inv.Stock+delta < 0 {
		return nil, apierror.ErrStockInsuficiente
	}
	inv.Stock += delta
	out := *inv
	return &out, nil
}

func (r *stubInventarioRepo) FijarStockTx(_ *gorm.DB, id uint, stock int) (*model.Inventario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.rows[id]
	if !ok {
		return nil, apierror.ErrNoEncontrado
	}
	inv.Stock = stock
	out := *inv
	return &out, nil
}

func (r *stubInventarioRepo) DB() *gorm.DB { return nil } // nil DB = runTx calls fn directly

var _ repository.InventarioRepository = (*stubInventarioRepo)(nil)

type stubMovimientoRepo struct {
	mu   sync.Mutex
	seq  uint
	movs []model.MovimientoStock
}

func newStubMovimientoRepo() *stubMovimientoRepo { return &stubMovimientoRepo{} }

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	m.ID = r.seq
	r.movs = append(r.movs, *m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, filter dto.MovimientoFilter) ([]model.MovimientoStock, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.MovimientoStock, 0, len(r.movs))
	// newest first
	for i := len(r.movs) - 1; i >= 0; i-- {
		m := r.movs[i]
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		if filter.InventarioID != nil && m.InventarioID != *filter.InventarioID {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// ── Seed helpers ─────────────────────────────────────────────────────────────

func seedPuntoVenta(r *stubPuntoVentaRepo, nombre, tipo string) *model.PuntoVenta {
	pv := &model.PuntoVenta{Nombre: nombre, Ubicacion: "Av. Siempreviva 742", Tipo: tipo}
	_ = r.Create(context.Background(), pv)
	return pv
}

func seedLibro(r *stubLibroRepo, nombre, autor string, stockMinimo int) *model.Libro {
	l := &model.Libro{Nombre: nombre, Autor: autor, StockMinimo: stockMinimo}
	_ = r.Create(context.Background(), l)
	return l
}

func seedInventario(r *stubInventarioRepo, libroID, pvID uint, stock, minimo int) *model.Inventario {
	inv := &model.Inventario{LibroID: libroID, PuntoVentaID: pvID, Stock: stock, StockMinimo: minimo}
	_ = r.Create(context.Background(), inv)
	return inv
}
