package router

import (
	"time"

	"nedpos/internal/config"
	"nedpos/internal/handler"
	"nedpos/internal/infra"
	"nedpos/internal/middleware"
	"nedpos/internal/model"
	"nedpos/internal/repository"
	"nedpos/internal/service"
	"nedpos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailBreaker *infra.CircuitBreaker) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	repairRepo := repository.NewRepairRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	priceChangeRepo := repository.NewPriceChangeRepository(db)
	cartStore := repository.NewCartStore(rdb, time.Duration(cfg.CartTTLHours)*time.Hour)

	// ── Services ─────────────────────────────────────────────────────────────
	// Worker dispatcher: injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(userRepo, cfg)
	settingsSvc := service.NewSettingsService(settingsRepo, cfg)
	productSvc := service.NewProductService(productRepo, priceChangeRepo, rdb)
	inventorySvc := service.NewInventoryService(productRepo, movementRepo, notificationRepo, settingsSvc, rdb)
	saleSvc := service.NewSaleService(saleRepo, productRepo, customerRepo, inventorySvc, dispatcher, cfg.ApplyStockOnCommit)
	cartSvc := service.NewCartService(cartStore, productRepo, saleSvc)
	customerSvc := service.NewCustomerService(customerRepo)
	repairSvc := service.NewRepairService(repairRepo, settingsSvc, cfg.ReceiptStoragePath)
	supplierSvc := service.NewSupplierService(supplierRepo, productRepo)
	reportSvc := service.NewReportService(saleRepo, customerRepo, repairRepo, productRepo)
	notificationSvc := service.NewNotificationService(notificationRepo)
	receiptSvc := service.NewReceiptService(receiptRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	priceH := handler.NewPriceCheckHandler(productSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	cartH := handler.NewCartHandler(cartSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	repairsH := handler.NewRepairsHandler(repairSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	notificationsH := handler.NewNotificationsHandler(notificationSvc)
	receiptsH := handler.NewReceiptsHandler(receiptSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailBreaker))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check: no auth required
	r.GET("/v1/price/:barcode", priceH.GetPrice)

	// Protected routes
	managers := middleware.RequireRole(model.RoleOwner, model.RoleAdmin)
	floor := middleware.RequireRole(model.RoleOwner, model.RoleAdmin, model.RoleSales)
	workshop := middleware.RequireRole(model.RoleOwner, model.RoleAdmin, model.RoleSales, model.RoleMaintenance)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		// Catalog: sales staff read, managers write
		v1.GET("/products", floor, productsH.List)
		v1.GET("/products/:id", floor, productsH.Get)
		v1.GET("/products/barcode/:barcode", floor, productsH.GetByBarcode)
		products := v1.Group("/products", managers)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.GET("/:id/price-history", productsH.PriceHistory)
			products.PATCH("/:id/stock", inventoryH.AdjustStock)
		}

		inventory := v1.Group("/inventory", managers)
		{
			inventory.GET("/low-stock", inventoryH.LowStock)
			inventory.GET("/movements", inventoryH.ListMovements)
		}

		cart := v1.Group("/cart", floor)
		{
			cart.GET("", cartH.Get)
			cart.DELETE("", cartH.Clear)
			cart.POST("/items", cartH.AddItem)
			cart.DELETE("/items/:product_id", cartH.RemoveItem)
			cart.PATCH("/items/:product_id/rental-days", cartH.SetRentalDays)
			cart.POST("/checkout", cartH.Checkout)
		}

		sales := v1.Group("/sales", floor)
		{
			sales.POST("", salesH.Create)
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.Get)
		}

		customers := v1.Group("/customers", floor)
		{
			customers.GET("", customersH.List)
			customers.POST("", customersH.Create)
			customers.GET("/export", managers, customersH.Export)
			customers.GET("/:id", customersH.Get)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", managers, customersH.Delete)
		}

		repairs := v1.Group("/repairs", workshop)
		{
			repairs.GET("", repairsH.List)
			repairs.POST("", repairsH.Create)
			repairs.PATCH("/:id/status", repairsH.Advance)
			repairs.GET("/:id/ticket", repairsH.Ticket)
		}

		suppliers := v1.Group("/suppliers", managers)
		{
			suppliers.GET("", suppliersH.List)
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("/:id", suppliersH.Get)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Delete)
		}
		purchases := v1.Group("/purchases", managers)
		{
			purchases.GET("", suppliersH.ListPurchases)
			purchases.POST("", suppliersH.CreatePurchase)
		}

		reports := v1.Group("/reports", managers)
		{
			reports.GET("/dashboard", reportsH.Dashboard)
			reports.GET("/customers", reportsH.Customers)
			reports.GET("/sales-summary", reportsH.SalesSummary)
		}

		// Settings: everyone reads the store profile, managers save it
		v1.GET("/settings", settingsH.Get)
		v1.PUT("/settings", managers, settingsH.Update)

		notifications := v1.Group("/notifications", managers)
		{
			notifications.GET("", notificationsH.List)
			notifications.PATCH("/:id/read", notificationsH.MarkRead)
			notifications.POST("/read-all", notificationsH.MarkAllRead)
		}

		receipts := v1.Group("/receipts", floor)
		{
			receipts.GET("/pdf/:id", receiptsH.DownloadPDF)
			receipts.GET("/:sale_id", receiptsH.GetBySale)
			receipts.POST("/:id/retry", managers, receiptsH.Retry)
		}

		users := v1.Group("/users", middleware.RequireRole(model.RoleOwner))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}

		v1.GET("/admin/dead-letters", middleware.RequireRole(model.RoleOwner), handler.DeadLetters(rdb))
	}

	// Swagger UI: only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
