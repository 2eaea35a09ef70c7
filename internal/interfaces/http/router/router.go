package router

import (
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/infrastructure/auth"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/infrastructure/config"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/infrastructure/logger"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/interfaces/http/handler"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Building *handler.BuildingHandler
	Room     *handler.RoomHandler
	Tenant   *handler.TenantHandler
	Contract *handler.ContractHandler
	Service  *handler.ServiceHandler
	Reading  *handler.ReadingHandler
	Invoice  *handler.InvoiceHandler
	Payment  *handler.PaymentHandler
	Webhook  *handler.WebhookHandler
}

// Dependencies holds everything the router needs besides the handlers
type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
}

// New builds the gin engine with all middleware and routes mounted
func New(deps Dependencies, h Handlers) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.CORS(),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
	)

	// liveness and readiness are unauthenticated
	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")

	// the bank pushes here with a shared secret, outside JWT auth
	webhooks := api.Group("/transactions/webhook")
	webhooks.Use(middleware.WebhookAuth(deps.Config.Webhook.Secret))
	webhooks.POST("/bank", h.Webhook.BankTransfer)

	api.Use(middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWTService,
		TokenBlacklist: deps.TokenBlacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/register",
			"/api/v1/auth/refresh",
			"/api/v1/transactions/webhook/bank",
		},
		Logger: deps.Logger,
	}))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/profile", h.Auth.Profile)
		authGroup.POST("/change-password", h.Auth.ChangePassword)
	}

	manager := middleware.RequireManager()

	users := api.Group("/users")
	users.Use(middleware.RequireAdmin())
	{
		users.POST("", h.User.Register)
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.POST("/:id/activate", h.User.Activate)
		users.POST("/:id/deactivate", h.User.Deactivate)
	}

	buildings := api.Group("/buildings")
	{
		buildings.GET("", h.Building.List)
		buildings.GET("/:id", h.Building.Get)
		buildings.POST("", manager, h.Building.Create)
		buildings.PUT("/:id", manager, h.Building.Update)
		buildings.DELETE("/:id", manager, h.Building.Delete)
	}

	rooms := api.Group("/rooms")
	{
		rooms.GET("", h.Room.List)
		rooms.GET("/:id", h.Room.Get)
		rooms.POST("", manager, h.Room.Create)
		rooms.PUT("/:id", manager, h.Room.Update)
		rooms.POST("/:id/maintenance", manager, h.Room.StartMaintenance)
		rooms.DELETE("/:id/maintenance", manager, h.Room.EndMaintenance)
		rooms.DELETE("/:id", manager, h.Room.Delete)
	}

	tenants := api.Group("/tenants")
	{
		tenants.GET("", h.Tenant.List)
		tenants.GET("/:id", h.Tenant.Get)
		tenants.POST("", manager, h.Tenant.Create)
		tenants.PUT("/:id", manager, h.Tenant.Update)
		tenants.DELETE("/:id", manager, h.Tenant.Delete)
	}

	contracts := api.Group("/contracts")
	{
		contracts.GET("", h.Contract.List)
		contracts.GET("/:id", h.Contract.Get)
		contracts.POST("", manager, h.Contract.Create)
		contracts.PUT("/:id", manager, h.Contract.Update)
		contracts.POST("/:id/terminate", manager, h.Contract.Terminate)
	}

	services := api.Group("/services")
	{
		services.GET("", h.Service.List)
		services.GET("/:id", h.Service.Get)
		services.POST("", manager, h.Service.Create)
		services.PUT("/:id", manager, h.Service.Update)
		services.POST("/:id/enable", manager, h.Service.Enable)
		services.POST("/:id/disable", manager, h.Service.Disable)
	}

	readings := api.Group("/readings")
	{
		readings.GET("", h.Reading.List)
		readings.GET("/:id", h.Reading.Get)
		readings.POST("", manager, h.Reading.Record)
		readings.PUT("/:id", manager, h.Reading.Correct)
		readings.DELETE("/:id", manager, h.Reading.Delete)
	}

	invoices := api.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/code/:code", h.Invoice.GetByCode)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("", manager, h.Invoice.Generate)
		invoices.PATCH("/:id", manager, h.Invoice.Update)
		invoices.POST("/:id/finalize", manager, h.Invoice.Finalize)
		invoices.POST("/:id/cancel", manager, h.Invoice.Cancel)
		invoices.GET("/:id/payments", h.Payment.ListByInvoice)
		invoices.POST("/:id/payments", manager, h.Payment.Record)
	}

	transactions := api.Group("/transactions")
	{
		transactions.GET("", h.Payment.List)
		transactions.PATCH("/:id/link", manager, h.Payment.Link)
	}

	return engine
}
