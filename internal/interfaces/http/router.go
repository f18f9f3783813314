// Package http wires the gin engine: middleware chain, route groups and
// handler construction.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	appauth "galerie/internal/application/auth"
	"galerie/internal/application/checkout"
	"galerie/internal/application/settings"
	"galerie/internal/domain/tenant"
	infraauth "galerie/internal/infrastructure/auth"
	appconfig "galerie/internal/infrastructure/config"
	"galerie/internal/infrastructure/repository"
	"galerie/internal/interfaces/http/handlers"
	"galerie/internal/interfaces/http/middleware"
	"galerie/internal/shared/logger"
)

// NewRouter builds the full HTTP surface. The settings service is shared
// with the rest of the process so cache invalidation reaches it.
func NewRouter(cfg *appconfig.Config, db *gorm.DB, settingsService *settings.Service, log logger.Interface) *gin.Engine {
	gin.SetMode(ginMode(cfg.Server.Mode))
	registerValidations()

	directory := repository.NewTenantDirectoryRepository(db)
	resolver := tenant.NewResolver(directory, log)

	jwtService := infraauth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpMinutes)
	hasher := infraauth.NewPasswordHasher(cfg.Auth.BcryptCost)

	authService := appauth.NewService(db, jwtService, hasher, log)
	checkoutService := checkout.NewService(db, log)

	authHandler := handlers.NewAuthHandler(authService, db)
	paintingHandler := handlers.NewPaintingHandler(db)
	cartHandler := handlers.NewCartHandler(db)
	orderHandler := handlers.NewOrderHandler(db, checkoutService)
	favoriteHandler := handlers.NewFavoriteHandler(db)
	exhibitionHandler := handlers.NewExhibitionHandler(db)
	customRequestHandler := handlers.NewCustomRequestHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)
	settingHandler := handlers.NewSettingHandler(settingsService)
	webhookHandler := handlers.NewWebhookHandler(db, cfg.Stripe.WebhookSecret, log)
	siteHandler := handlers.NewSiteHandler(db)
	tenantHandler := handlers.NewTenantHandler(directory)
	healthHandler := handlers.NewHealthHandler(db)

	router := gin.New()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.CORS(),
		middleware.Tenant(resolver),
		middleware.Logging(log),
	)

	router.GET("/health", healthHandler.Check)
	router.POST("/webhooks/stripe", webhookHandler.HandleStripe)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/paintings", paintingHandler.List)
		api.GET("/paintings/:id", paintingHandler.Get)
		api.GET("/exhibitions", exhibitionHandler.List)
		api.POST("/custom-requests", customRequestHandler.Create)
	}

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(jwtService))
	{
		authed.GET("/me", authHandler.Me)

		authed.GET("/cart", cartHandler.Get)
		authed.POST("/cart/items", cartHandler.AddItem)
		authed.PUT("/cart/items/:item_id", cartHandler.UpdateItem)
		authed.DELETE("/cart/items/:item_id", cartHandler.RemoveItem)

		authed.POST("/orders", orderHandler.Checkout)
		authed.GET("/orders", orderHandler.List)
		authed.GET("/orders/:id", orderHandler.Get)

		authed.POST("/paintings/:id/favorite", favoriteHandler.Toggle)
		authed.GET("/favorites", favoriteHandler.List)

		authed.GET("/notifications", notificationHandler.List)
		authed.POST("/notifications/:id/read", notificationHandler.MarkAsRead)

		authed.POST("/sites", siteHandler.Create)
		authed.GET("/sites/:id", siteHandler.Get)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth(jwtService), middleware.AdminOnly())
	{
		admin.POST("/paintings", paintingHandler.Create)
		admin.PUT("/paintings/:id", paintingHandler.Update)
		admin.DELETE("/paintings/:id", paintingHandler.Delete)

		admin.GET("/orders", orderHandler.ListAll)
		admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)

		admin.POST("/exhibitions", exhibitionHandler.Create)
		admin.PUT("/exhibitions/:id", exhibitionHandler.Update)
		admin.DELETE("/exhibitions/:id", exhibitionHandler.Delete)

		admin.GET("/custom-requests", customRequestHandler.List)
		admin.PUT("/custom-requests/:id/status", customRequestHandler.UpdateStatus)

		admin.GET("/settings", settingHandler.List)
		admin.GET("/settings/:key", settingHandler.Get)
		admin.PUT("/settings/:key", settingHandler.Set)
		admin.DELETE("/settings/:key", settingHandler.Delete)

		admin.GET("/sites", siteHandler.List)
		admin.PUT("/sites/:id/status", siteHandler.UpdateStatus)
		admin.PUT("/sites/:id/domains", siteHandler.UpdateDomains)

		admin.GET("/tenants", tenantHandler.List)
		admin.POST("/tenants", tenantHandler.Create)
	}

	return router
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// registerValidations adds the tenant_host rule used for directory entries:
// a bare lowercase host, optionally with a port, no scheme or path.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("tenant_host", func(fl validator.FieldLevel) bool {
			host := fl.Field().String()
			if host == "" {
				return false
			}
			for _, r := range host {
				switch {
				case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
				case r == '.', r == '-', r == ':':
				default:
					return false
				}
			}
			return true
		})
	}
}

// ShutdownTimeout is how long in-flight requests get to finish on SIGTERM.
const ShutdownTimeout = 10 * time.Second
