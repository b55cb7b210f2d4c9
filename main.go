package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stockive-backend/config"
	"stockive-backend/database"
	"stockive-backend/internal/api"
	"stockive-backend/internal/middleware"
	"stockive-backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Services
	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpiration)
	userService := services.NewUserService(db)
	storeService := services.NewStoreService(db)
	productService := services.NewProductService(db, cfg.LowStockThreshold, cfg.ExpiryWarningDays, cfg.ClearanceWindowDays)
	supplierService := services.NewSupplierService(db)
	purchaseOrderService := services.NewPurchaseOrderService(db, productService)
	barcodeService := services.NewBarcodeService(db, cfg.BarcodeCompanyPrefix)
	analyticsService := services.NewAnalyticsService(db, cfg.ExpiryWarningDays)
	wsService := services.NewWebSocketService(authService)
	notificationService := services.NewNotificationService(db, wsService)
	posSyncService := services.NewPOSSyncService(db, cfg, storeService, productService, wsService)

	// Background inventory alert scan
	alertScheduler := services.NewAlertScheduler(notificationService, productService, cfg.AlertScanIntervalMin)
	alertScheduler.Start()

	// Handlers
	authHandlers := api.NewAuthHandlers(userService, authService, storeService)
	storeHandlers := api.NewStoreHandlers(storeService, userService)
	productHandlers := api.NewProductHandlers(productService, storeService, barcodeService, userService)
	supplierHandlers := api.NewSupplierHandlers(supplierService)
	purchaseOrderHandlers := api.NewPurchaseOrderHandlers(purchaseOrderService)
	barcodeHandlers := api.NewBarcodeHandlers(barcodeService)
	dashboardHandlers := api.NewDashboardHandlers(analyticsService, storeService, userService, wsService)
	navigationHandlers := api.NewNavigationHandlers(userService, storeService)
	posHandlers := api.NewPOSHandlers(posSyncService)
	notificationHandlers := api.NewNotificationHandlers(notificationService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	securityConfig := &middleware.SecurityConfig{
		MaxRequestSize:    2 * 1024 * 1024,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   time.Duration(cfg.RateLimitWindow) * time.Second,
	}

	// Router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.AllowAllOrigins))
	router.Use(middleware.SecurityMiddleware(securityConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status":      "ok",
				"environment": cfg.Environment,
				"liveClients": wsService.ConnectedUsers(),
			},
		})
	})

	apiGroup := router.Group("/api/v1")
	{
		// Public routes
		auth := apiGroup.Group("/auth")
		auth.Use(middleware.AuthRateLimitMiddleware())
		{
			auth.POST("/register", authHandlers.Register)
			auth.POST("/login", authHandlers.Login)
		}

		// Navigation is public but shape-shifts when a session exists
		apiGroup.GET("/navigation", authMiddleware.OptionalAuth(), navigationHandlers.GetNavigation)

		// Dashboard websocket authenticates via query token inside the
		// handler; browsers cannot set headers on websocket dials
		apiGroup.GET("/ws", dashboardHandlers.HandleWebSocket)

		// Protected routes
		protected := apiGroup.Group("/")
		protected.Use(authMiddleware.AuthRequired())
		{
			authProtected := protected.Group("/auth")
			{
				authProtected.POST("/logout", authHandlers.Logout)
				authProtected.POST("/refresh", authHandlers.RefreshToken)
				authProtected.GET("/profile", authHandlers.GetProfile)
				authProtected.PUT("/profile", authHandlers.UpdateProfile)
				authProtected.PUT("/plan", authHandlers.ChangePlan)
			}

			stores := protected.Group("/stores")
			{
				stores.POST("", storeHandlers.CreateStore)
				stores.GET("", storeHandlers.GetStores)
				stores.GET("/context", storeHandlers.GetStoreContext)
				stores.GET("/:id", storeHandlers.GetStore)
				stores.PUT("/:id", storeHandlers.UpdateStore)
				stores.DELETE("/:id", storeHandlers.DeleteStore)
				stores.PUT("/:id/pos", storeHandlers.UpdatePOSConfig)
				stores.POST("/:id/pos/sync", posHandlers.SyncStore)
				stores.GET("/:id/pos/sync-history", posHandlers.GetSyncHistory)
			}

			products := protected.Group("/products")
			{
				products.POST("", productHandlers.CreateProduct)
				products.GET("", productHandlers.GetProducts)
				products.GET("/low-stock", productHandlers.GetLowStockProducts)
				products.GET("/expiring", productHandlers.GetExpiringProducts)
				products.GET("/clearance", productHandlers.GetClearanceProducts)
				products.GET("/scan/:code", productHandlers.ScanBarcode)
				products.GET("/:id", productHandlers.GetProduct)
				products.PUT("/:id", productHandlers.UpdateProduct)
				products.DELETE("/:id", productHandlers.DeleteProduct)
				products.POST("/:id/barcode", productHandlers.AssignBarcode)
				products.GET("/:id/ticket", productHandlers.GetProductTicket)
			}

			suppliers := protected.Group("/suppliers")
			{
				suppliers.POST("", supplierHandlers.CreateSupplier)
				suppliers.GET("", supplierHandlers.GetSuppliers)
				suppliers.GET("/:id", supplierHandlers.GetSupplier)
				suppliers.PUT("/:id", supplierHandlers.UpdateSupplier)
				suppliers.DELETE("/:id", supplierHandlers.DeleteSupplier)
			}

			orders := protected.Group("/purchase-orders")
			{
				orders.POST("", purchaseOrderHandlers.CreatePurchaseOrder)
				orders.GET("", purchaseOrderHandlers.GetPurchaseOrders)
				orders.GET("/report", purchaseOrderHandlers.GetPurchasingReport)
				orders.GET("/:id", purchaseOrderHandlers.GetPurchaseOrder)
				orders.POST("/:id/submit", purchaseOrderHandlers.SubmitPurchaseOrder)
				orders.POST("/:id/receive", purchaseOrderHandlers.ReceivePurchaseOrder)
				orders.POST("/:id/cancel", purchaseOrderHandlers.CancelPurchaseOrder)
			}

			barcodes := protected.Group("/barcodes")
			{
				barcodes.POST("/next", barcodeHandlers.NextBarcode)
				barcodes.POST("/validate", barcodeHandlers.ValidateBarcode)
			}

			protected.GET("/dashboard/stats", dashboardHandlers.GetDashboardStats)

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", notificationHandlers.GetNotifications)
				notifications.PUT("/:id/read", notificationHandlers.MarkNotificationRead)
				notifications.PUT("/read-all", notificationHandlers.MarkAllNotificationsRead)
			}
		}
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Stockive API server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	alertScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server shutdown complete")
}
