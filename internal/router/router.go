package router

import (
	"time"

	"libreria/internal/config"
	"libreria/internal/handler"
	"libreria/internal/middleware"
	"libreria/internal/model"
	"libreria/internal/repository"
	"libreria/internal/service"
	"libreria/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	puntoVentaRepo := repository.NewPuntoVentaRepository(db)
	libroRepo := repository.NewLibroRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	usuarioSvc := service.NewUsuarioService(usuarioRepo, puntoVentaRepo, cfg)
	puntoVentaSvc := service.NewPuntoVentaService(puntoVentaRepo, inventarioRepo, usuarioRepo)
	libroSvc := service.NewLibroService(libroRepo, inventarioRepo)
	inventarioSvc := service.NewInventarioService(inventarioRepo, libroRepo, puntoVentaRepo, usuarioRepo, movimientoRepo, cfg.PDFStoragePath)
	ventaSvc := service.NewVentaService(inventarioRepo, movimientoRepo, dispatcher)
	movimientoSvc := service.NewMovimientoService(movimientoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	puntosVentaH := handler.NewPuntosVentaHandler(puntoVentaSvc)
	librosH := handler.NewLibrosHandler(libroSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc, ventaSvc)
	movimientosH := handler.NewMovimientosHandler(inventarioSvc, movimientoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Login is public, rate-limited harder than the rest of the API
	r.POST("/usuarios/login", middleware.LoginRateLimiter(), usuariosH.Login)

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(model.RolAdmin)
	anyRole := middleware.RequireRole(model.RolAdmin, model.RolVendedor)

	pv := r.Group("/puntos-venta", jwtMW)
	{
		pv.GET("/", anyRole, puntosVentaH.Listar)
		pv.GET("/:id", anyRole, puntosVentaH.Obtener)
		pv.POST("/", adminOnly, puntosVentaH.Crear)
		pv.PATCH("/:id", adminOnly, puntosVentaH.Actualizar)
		pv.DELETE("/:id", adminOnly, puntosVentaH.Eliminar)
	}

	usuarios := r.Group("/usuarios", jwtMW, adminOnly)
	{
		usuarios.GET("/", usuariosH.Listar)
		usuarios.GET("/:id", usuariosH.Obtener)
		usuarios.POST("/", usuariosH.Crear)
		usuarios.PATCH("/:id", usuariosH.Actualizar)
		usuarios.DELETE("/:id", usuariosH.Eliminar)
	}

	libros := r.Group("/libros", jwtMW)
	{
		libros.GET("/", anyRole, librosH.Listar)
		libros.GET("/:id", anyRole, librosH.Obtener)
		libros.POST("/", adminOnly, librosH.Crear)
		libros.PATCH("/:id", adminOnly, librosH.Actualizar)
		libros.DELETE("/:id", adminOnly, librosH.Eliminar)
	}

	inv := r.Group("/inventario", jwtMW)
	{
		inv.GET("/", anyRole, inventarioH.Listar)
		inv.GET("/stock-bajo", anyRole, inventarioH.StockBajo)
		inv.GET("/stock-bajo/pdf", anyRole, inventarioH.StockBajoPDF)
		inv.GET("/:id", anyRole, inventarioH.Obtener)
		inv.POST("/", adminOnly, inventarioH.Crear)
		inv.POST("/:id/ajustar", adminOnly, inventarioH.Ajustar)
		inv.PUT("/:id/fijar", adminOnly, inventarioH.Fijar)
		// Selling is the one write vendedores are allowed
		inv.POST("/vender/:id", anyRole, inventarioH.Vender)
	}

	movimientos := r.Group("/movimientos", jwtMW)
	{
		movimientos.GET("/", anyRole, movimientosH.Listar)
		movimientos.POST("/", adminOnly, movimientosH.Crear)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
