package router

import (
	"time"

	"ayher/internal/config"
	"ayher/internal/handler"
	"ayher/internal/infra"
	"ayher/internal/middleware"
	"ayher/internal/repository"
	"ayher/internal/service"
	"ayher/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	registro *service.TipoRegistry,
	dispatcher *worker.Dispatcher,
	smtpCB *infra.CircuitBreaker,
) *gin.Engine {
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
	articuloRepo := repository.NewArticuloRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)
	tasaRepo := repository.NewTasaCambioRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	remisionRepo := repository.NewRemisionRepository(db)
	devolucionRepo := repository.NewDevolucionRepository(db)
	cambioRepo := repository.NewCambioRepository(db)
	proformaRepo := repository.NewProformaRepository(db)
	marcaRepo := repository.NewMarcaRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	clienteRepo := repository.NewClienteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	tasaSvc := service.NewTasaService(tasaRepo)
	inventarioSvc := service.NewInventarioService(articuloRepo, movimientoRepo, registro)
	articuloSvc := service.NewArticuloService(articuloRepo, inventarioSvc, tasaSvc)
	compraSvc := service.NewCompraService(compraRepo, articuloRepo, inventarioSvc, tasaSvc)
	ventaSvc := service.NewVentaService(ventaRepo, remisionRepo, movimientoRepo, inventarioSvc, tasaSvc, dispatcher)
	remisionSvc := service.NewRemisionService(remisionRepo, movimientoRepo, inventarioSvc, tasaSvc, dispatcher)
	devolucionSvc := service.NewDevolucionService(devolucionRepo, ventaRepo, compraRepo, inventarioSvc, tasaSvc)
	cambioSvc := service.NewCambioService(cambioRepo, inventarioSvc, tasaSvc)
	proformaSvc := service.NewProformaService(proformaRepo, tasaSvc)
	marcaSvc := service.NewMarcaService(marcaRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	clienteSvc := service.NewClienteService(clienteRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	articulosH := handler.NewArticulosHandler(articuloSvc, inventarioSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc, registro)
	tasasH := handler.NewTasasHandler(tasaSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	remisionesH := handler.NewRemisionesHandler(remisionSvc)
	devolucionesH := handler.NewDevolucionesHandler(devolucionSvc)
	cambiosH := handler.NewCambiosHandler(cambioSvc)
	proformasH := handler.NewProformasHandler(proformaSvc)
	catalogosH := handler.NewCatalogosHandler(marcaSvc, proveedorSvc, clienteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: vendedor, bodeguero, administrador — declared per-endpoint
		todos := middleware.RequireRole("vendedor", "bodeguero", "administrador")
		bodega := middleware.RequireRole("bodeguero", "administrador")
		admin := middleware.RequireRole("administrador")

		// Artículos — lectura para todos, escritura de catálogo para bodega
		v1.GET("/articulos", todos, articulosH.Listar)
		v1.GET("/articulos/:id", todos, articulosH.Obtener)
		v1.GET("/articulos/:id/auditoria", bodega, articulosH.Auditar)
		arts := v1.Group("/articulos", bodega)
		{
			arts.POST("", articulosH.Crear)
			arts.PUT("/:id", articulosH.Actualizar)
			arts.DELETE("/:id", articulosH.Desactivar)
			arts.PATCH("/:id/reactivar", articulosH.Reactivar)
		}

		// Ledger de movimientos
		v1.GET("/movimientos", bodega, inventarioH.ListarMovimientos)
		v1.GET("/movimientos/tipos", todos, inventarioH.ListarTipos)
		v1.POST("/movimientos/ajuste", bodega, inventarioH.AjusteManual)

		// Tasa de cambio — consulta para todos, registro solo administrador
		v1.GET("/tasas", todos, tasasH.Listar)
		v1.GET("/tasas/vigente", todos, tasasH.Vigente)
		v1.POST("/tasas", admin, tasasH.Registrar)

		// Compras
		compras := v1.Group("/compras", bodega)
		{
			compras.POST("", comprasH.Registrar)
			compras.GET("", comprasH.Listar)
			compras.GET("/:id", comprasH.Obtener)
		}

		// Ventas
		v1.POST("/ventas", todos, ventasH.Registrar)
		v1.GET("/ventas", todos, ventasH.Listar)
		v1.GET("/ventas/:id", todos, ventasH.Obtener)

		// Remisiones
		v1.POST("/remisiones", todos, remisionesH.Registrar)
		v1.GET("/remisiones", todos, remisionesH.Listar)
		v1.GET("/remisiones/:id", todos, remisionesH.Obtener)
		v1.POST("/remisiones/:id/facturar", bodega, remisionesH.MarcarFacturada)

		// Devoluciones
		v1.POST("/devoluciones/venta", todos, devolucionesH.RegistrarVenta)
		v1.GET("/devoluciones/venta", todos, devolucionesH.ListarVenta)
		v1.GET("/devoluciones/venta/:id", todos, devolucionesH.ObtenerVenta)
		v1.POST("/devoluciones/compra", bodega, devolucionesH.RegistrarCompra)
		v1.GET("/devoluciones/compra", bodega, devolucionesH.ListarCompra)
		v1.GET("/devoluciones/compra/:id", bodega, devolucionesH.ObtenerCompra)

		// Cambios de mercadería
		v1.POST("/cambios", todos, cambiosH.Registrar)
		v1.GET("/cambios", todos, cambiosH.Listar)
		v1.GET("/cambios/:id", todos, cambiosH.Obtener)

		// Proformas
		v1.POST("/proformas", todos, proformasH.Registrar)
		v1.GET("/proformas", todos, proformasH.Listar)
		v1.GET("/proformas/:id", todos, proformasH.Obtener)

		// Catálogos — lectura para todos, escritura solo administrador
		v1.GET("/marcas", todos, catalogosH.ListarMarcas)
		v1.GET("/proveedores", todos, catalogosH.ListarProveedores)
		v1.GET("/clientes", todos, catalogosH.ListarClientes)
		marcas := v1.Group("/marcas", admin)
		{
			marcas.POST("", catalogosH.CrearMarca)
			marcas.PUT("/:id", catalogosH.ActualizarMarca)
			marcas.DELETE("/:id", catalogosH.DesactivarMarca)
		}
		proveedores := v1.Group("/proveedores", admin)
		{
			proveedores.POST("", catalogosH.CrearProveedor)
			proveedores.PUT("/:id", catalogosH.ActualizarProveedor)
			proveedores.DELETE("/:id", catalogosH.DesactivarProveedor)
		}
		clientes := v1.Group("/clientes", todos)
		{
			clientes.POST("", catalogosH.CrearCliente)
			clientes.PUT("/:id", catalogosH.ActualizarCliente)
		}
		v1.DELETE("/clientes/:id", admin, catalogosH.DesactivarCliente)

		// Usuarios — administrador only
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
