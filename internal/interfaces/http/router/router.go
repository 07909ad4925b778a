package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/stocktrack/backend/internal/domain/identity"
	"github.com/stocktrack/backend/internal/infrastructure/auth"
	"github.com/stocktrack/backend/internal/infrastructure/logger"
	"github.com/stocktrack/backend/internal/interfaces/http/handler"
	"github.com/stocktrack/backend/internal/interfaces/http/middleware"
)

// Handlers bundles all HTTP handlers served by the router
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Group    *handler.GroupHandler
	Item     *handler.ItemHandler
	Shop     *handler.ShopHandler
	Invoice  *handler.InvoiceHandler
	Import   *handler.ImportHandler
	Report   *handler.ReportHandler
	Activity *handler.ActivityHandler
}

// Config holds router dependencies
type Config struct {
	Handlers       Handlers
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger
	ServiceName    string
	CORS           middleware.CORSConfig
	TracingEnabled bool
}

// New builds the gin engine with the full middleware chain and all routes
func New(cfg Config) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.TracingEnabled {
		engine.Use(otelgin.Middleware(cfg.ServiceName))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	jwtCfg := middleware.DefaultJWTConfig(cfg.JWTService)
	jwtCfg.TokenBlacklist = cfg.TokenBlacklist
	jwtCfg.Logger = cfg.Logger
	jwtCfg.SkipPaths = append(jwtCfg.SkipPaths, "/api/v1/auth/set-password")

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	registerAuthRoutes(api, cfg.Handlers.Auth)
	registerUserRoutes(api, cfg.Handlers.User)
	registerInventoryRoutes(api, cfg.Handlers.Group, cfg.Handlers.Item, cfg.Handlers.Import)
	registerSalesRoutes(api, cfg.Handlers.Shop, cfg.Handlers.Invoice)
	registerReportRoutes(api, cfg.Handlers.Report)
	registerActivityRoutes(api, cfg.Handlers.Activity)

	return engine
}

func registerAuthRoutes(api *gin.RouterGroup, h *handler.AuthHandler) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/set-password", h.SetPassword)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.GET("/me", h.Me)
		authGroup.POST("/logout", h.Logout)
	}
}

func registerUserRoutes(api *gin.RouterGroup, h *handler.UserHandler) {
	users := api.Group("/users")
	users.Use(middleware.RequireRole(identity.RoleAdmin))
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}

func registerInventoryRoutes(api *gin.RouterGroup, groups *handler.GroupHandler, items *handler.ItemHandler, imports *handler.ImportHandler) {
	manage := middleware.RequireRole(identity.RoleAdmin, identity.RoleCreator)

	groupRoutes := api.Group("/inventory/groups")
	{
		groupRoutes.GET("", groups.List)
		groupRoutes.GET("/:id", groups.Get)
		groupRoutes.POST("", manage, groups.Create)
		groupRoutes.PUT("/:id", manage, groups.Update)
		groupRoutes.DELETE("/:id", manage, groups.Delete)
	}

	itemRoutes := api.Group("/inventory/items")
	{
		itemRoutes.GET("", items.List)
		itemRoutes.GET("/:id", items.Get)
		itemRoutes.GET("/code/:code", items.GetByCode)
		itemRoutes.GET("/:id/photo/download-url", items.PhotoDownloadURL)
		itemRoutes.POST("", manage, items.Create)
		itemRoutes.PUT("/:id", manage, items.Update)
		itemRoutes.DELETE("/:id", manage, items.Delete)
		itemRoutes.POST("/:id/photo/upload-url", manage, items.PhotoUploadURL)
	}

	api.POST("/inventory/import", manage, imports.Upload)
}

func registerSalesRoutes(api *gin.RouterGroup, shops *handler.ShopHandler, invoices *handler.InvoiceHandler) {
	adminOnly := middleware.RequireRole(identity.RoleAdmin)
	sell := middleware.RequireRole(identity.RoleAdmin, identity.RoleSale)

	shopRoutes := api.Group("/shops")
	{
		shopRoutes.GET("", shops.List)
		shopRoutes.GET("/:id", shops.Get)
		shopRoutes.POST("", adminOnly, shops.Create)
		shopRoutes.PUT("/:id", adminOnly, shops.Update)
		shopRoutes.DELETE("/:id", adminOnly, shops.Delete)
	}

	invoiceRoutes := api.Group("/invoices")
	{
		invoiceRoutes.GET("", invoices.List)
		invoiceRoutes.GET("/:id", invoices.Get)
		invoiceRoutes.POST("", sell, invoices.Create)
		invoiceRoutes.DELETE("/:id", adminOnly, invoices.Delete)
	}
}

func registerReportRoutes(api *gin.RouterGroup, h *handler.ReportHandler) {
	reports := api.Group("/reports")
	{
		reports.GET("/summary", h.Summary)
		reports.GET("/top-selling", h.TopSelling)
		reports.GET("/sales-by-shop", h.SalesByShop)
		reports.GET("/purchases", h.PurchaseSummary)
	}
}

func registerActivityRoutes(api *gin.RouterGroup, h *handler.ActivityHandler) {
	api.GET("/activities", h.List)
}
