package router

import (
	"net/http"
	"time"

	"rentdesk/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/handler"
	"rentdesk/internal/middleware"
	"rentdesk/internal/repository"
	"rentdesk/internal/service"
	"rentdesk/internal/ws"
	"rentdesk/pkg/cloudinary"
	"rentdesk/pkg/payment"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"
)

const (
	maxProfileImages = 5
	maxPropertyFiles = 10
	maxAttachments   = 10
)

// Setup builds the engine with every repository, service and handler wired.
// cloud may be nil when uploads are not configured.
func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, gateways *payment.Selector, log zerolog.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true

	if cfg.OTEL.Enabled {
		r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	r.Use(corsMiddleware(cfg.CORS))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws/"})))
	rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	chatRepo := repository.NewChatRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	hub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notificationRepo, log)
	transferSvc := service.NewTransferService(db, walletRepo, txnRepo)
	maintenanceSvc := service.NewMaintenanceService(db, maintenanceRepo, categoryRepo, propertyRepo, chatRepo, transferSvc, log)
	propertySvc := service.NewPropertyService(propertyRepo, settingRepo)
	catalogSvc := service.NewCatalogService(categoryRepo)
	financeSvc := service.NewFinanceService(service.FinanceDeps{
		DB:            db,
		Transactions:  txnRepo,
		Wallets:       walletRepo,
		Users:         userRepo,
		Budgets:       budgetRepo,
		Properties:    propertyRepo,
		Maintenance:   maintenanceRepo,
		Notifications: notifSvc,
		Gateways:      gateways,
		Payment:       cfg.Payment,
		Location:      cfg.Finance.Location(),
		Log:           log,
	})

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceSvc, hub)
	propertyHandler := handler.NewPropertyHandler(propertySvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	financeHandler := handler.NewFinanceHandler(financeSvc)
	walletHandler := handler.NewWalletHandler(financeSvc)
	webhookHandler := handler.NewPaymentWebhookHandler(financeSvc, cfg.Payment.WebhookSecret, cfg.Payment.AllowUnsigned)
	notificationHandler := handler.NewNotificationHandler(notifSvc)

	authz := middleware.NewAuthorizer(&cfg.JWT, authSvc)
	authMw := authz.Authorize()
	admin := authz.AuthorizeRole(domain.RoleAdmin)
	landlord := authz.AuthorizeRole(domain.RoleLandlord)
	tenant := authz.AuthorizeRole(domain.RoleTenant)
	vendor := authz.AuthorizeRole(domain.RoleVendor)
	folder := cfg.Cloudinary.Folder

	r.GET("/ws/maintenance/:id", handler.MaintenanceChatWS(&cfg.JWT, authSvc, maintenanceSvc, hub))

	api := r.Group(cfg.Server.BasePath)
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMw, middleware.Logout)
			authGroup.GET("/me", authMw, authHandler.Me)
		}
		api.PATCH("/profile/:id", authMw,
			middleware.CloudUpload(cloud, folder+"/profiles", "images", maxProfileImages),
			authHandler.UpdateProfile)

		landlordGroup := api.Group("/landlord")
		landlordGroup.Use(authMw, landlord)
		{
			landlordGroup.GET("/property", propertyHandler.ListMine)
			landlordGroup.POST("/property",
				middleware.CloudUpload(cloud, folder+"/properties", "files", maxPropertyFiles),
				propertyHandler.Create)
			landlordGroup.PATCH("/property/showcase/:propertyId", propertyHandler.ToggleShowcase)
			landlordGroup.DELETE("/property/:propertyId", propertyHandler.Delete)
			landlordGroup.POST("/property/:propertyId/apartments", propertyHandler.AddApartment)
			landlordGroup.GET("/property/:propertyId/apartments", propertyHandler.ListApartments)

			landlordGroup.POST("/settings", propertyHandler.CreateSetting)
			landlordGroup.GET("/settings", propertyHandler.ListSettings)
			landlordGroup.GET("/settings/:id", propertyHandler.GetSetting)
			landlordGroup.PATCH("/settings/:id", propertyHandler.UpdateSetting)
			landlordGroup.DELETE("/settings/:id", propertyHandler.DeleteSetting)

			landlordGroup.POST("/whitelist", maintenanceHandler.CreateWhitelist)
			landlordGroup.GET("/whitelist", maintenanceHandler.ListWhitelist)

			finance := landlordGroup.Group("/finance")
			{
				finance.GET("/income", financeHandler.Income)
				finance.GET("/expenses", financeHandler.Expenses)
				finance.GET("/transactions", financeHandler.Transactions)
				finance.GET("/analysis", financeHandler.Analysis)
				finance.GET("/statistics", financeHandler.Statistics)
				finance.POST("/payment-link", financeHandler.PaymentLink)
				finance.POST("/budgets", financeHandler.CreateBudget)
				finance.GET("/budgets", financeHandler.ListBudgets)
				finance.PATCH("/budgets/:id", financeHandler.UpdateBudget)
			}
		}
		// Showcased listings are public.
		api.GET("/landlord/property/showcased", propertyHandler.ListShowcased)

		api.GET("/categories", catalogHandler.ListCategories)
		api.POST("/categories", authMw, admin, catalogHandler.CreateCategory)
		subs := api.Group("/subcategories")
		{
			subs.GET("", catalogHandler.ListSubCategories)
			subs.GET("/:id", catalogHandler.GetSubCategory)
			subs.POST("", authMw, admin, catalogHandler.CreateSubCategory)
			subs.PATCH("/:id", authMw, admin, catalogHandler.UpdateSubCategory)
			subs.DELETE("/:id", authMw, admin, catalogHandler.DeleteSubCategory)
		}
		api.POST("/vendor/services", authMw, vendor, catalogHandler.CreateService)
		api.GET("/services", catalogHandler.ListServices)

		m := api.Group("/maintenance")
		m.Use(authMw)
		{
			m.POST("", tenant, maintenanceHandler.Create)
			m.GET("", maintenanceHandler.List)
			m.GET("/vendor/jobs", vendor, maintenanceHandler.VendorJobs)
			m.POST("/check-whitelist", tenant, maintenanceHandler.CheckWhitelist)
			m.POST("/attachments",
				middleware.CloudUpload(cloud, folder+"/maintenance", "files", maxAttachments),
				maintenanceHandler.Attachments)
			m.GET("/:id", maintenanceHandler.Get)
			m.PATCH("/:id", maintenanceHandler.Update)
			m.DELETE("/:id", maintenanceHandler.Delete)
			m.POST("/:id/reschedule", maintenanceHandler.Reschedule)
			m.GET("/:id/history", maintenanceHandler.History)
			m.POST("/:id/decision", landlord, maintenanceHandler.Decide)
			m.POST("/:id/accept", vendor, maintenanceHandler.Accept)
			m.GET("/:id/vendor-assigned", maintenanceHandler.VendorAssigned)
			m.POST("/:id/pay", maintenanceHandler.Pay)
			m.POST("/:id/chat", maintenanceHandler.PostChat)
			m.GET("/:id/chat", maintenanceHandler.GetChat)
		}

		txns := api.Group("/transactions")
		txns.Use(authMw)
		{
			txns.GET("", walletHandler.History)
			txns.GET("/wallet", walletHandler.Get)
			txns.GET("/fund-wallet", walletHandler.Fund)
			txns.GET("/verify/:reference", walletHandler.Verify)
		}

		api.POST("/webhooks/payment", webhookHandler.Handle)

		api.GET("/notifications", authMw, notificationHandler.List)
		api.PUT("/notifications/:id/read", authMw, notificationHandler.MarkRead)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})
	return r
}

func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
		c.AllowCredentials = true
	}
	return cors.New(c)
}
