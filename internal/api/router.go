package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tavolo/ordering-gateway/internal/api/handler"
	"github.com/tavolo/ordering-gateway/internal/api/middleware"
	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
	"github.com/tavolo/ordering-gateway/internal/core/service"
)

// Dependencies collects everything the router needs. Construction and
// lifecycle of the collaborators stay in main; the router only registers
// routes and policy.
type Dependencies struct {
	Sessions  ports.SessionService
	Composer  ports.ComposerService
	Resolver  *service.RouteResolver
	Menu      ports.MenuItemGateway
	Orders    ports.OrderGateway
	Users     ports.UserGateway
	Roles     ports.RoleGateway
	Customers ports.CustomerGateway
	Images    ports.ImageSearcher

	Redis        *redis.Client
	LoginLimiter *middleware.LoginRateLimiter
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ordering"))
	e.Use(middleware.Session(deps.Sessions))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Resolver)
	navHandler := handler.NewNavigationHandler(deps.Resolver)
	menuHandler := handler.NewMenuItemHandler(deps.Menu)
	orderHandler := handler.NewOrderHandler(deps.Orders, deps.Menu, deps.Resolver)
	draftHandler := handler.NewDraftHandler(deps.Composer)
	userHandler := handler.NewUserHandler(deps.Users)
	roleHandler := handler.NewRoleHandler(deps.Roles)
	customerHandler := handler.NewCustomerHandler(deps.Customers)
	imageHandler := handler.NewImageHandler(deps.Images, deps.Logger)

	adminOnly := middleware.Guard(domain.RoleAdmin)
	orderingRoles := middleware.Guard(domain.RoleUser, domain.RoleAdmin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Redis, deps.Menu)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	v1 := e.Group("/v1")

	// --- Session ---
	v1.POST("/login", authHandler.Login, deps.LoginLimiter.Middleware())
	v1.POST("/logout", authHandler.Logout)
	v1.GET("/session", authHandler.Session)
	v1.POST("/session/role", authHandler.SelectRole)
	v1.POST("/signup", userHandler.Signup)

	// --- Navigation ---
	v1.GET("/navigation", navHandler.Resolve)

	// --- Menu items: public reads, admin writes ---
	v1.GET("/menuitems", menuHandler.List)
	v1.GET("/menuitems/:id", menuHandler.Get)
	v1.POST("/menuitems", menuHandler.Create, adminOnly)
	v1.PUT("/menuitems/:id", menuHandler.Update, adminOnly)
	v1.DELETE("/menuitems/:id", menuHandler.Delete, adminOnly)

	// --- Orders: reads need an ordering role, direct create is open for
	// guest checkout, destructive actions are admin-only ---
	v1.GET("/orders", orderHandler.List, orderingRoles)
	v1.GET("/orders/:id", orderHandler.Get, orderingRoles)
	v1.POST("/orders", orderHandler.Create)
	v1.PUT("/orders/:id", orderHandler.Update, adminOnly)
	v1.DELETE("/orders/:id", orderHandler.Delete, adminOnly)
	v1.GET("/views/orders", orderHandler.OrdersView, orderingRoles)

	// --- Order drafts: open to guests, the composer enforces its own rules ---
	v1.POST("/drafts", draftHandler.Create)
	v1.GET("/drafts/:id", draftHandler.Get)
	v1.PUT("/drafts/:id", draftHandler.Update)
	v1.POST("/drafts/:id/items/:itemID", draftHandler.ToggleItem)
	v1.GET("/drafts/:id/total", draftHandler.Total)
	v1.POST("/drafts/:id/payment", draftHandler.Pay)
	v1.POST("/drafts/:id/submit", draftHandler.Submit)

	// --- Users and roles ---
	v1.GET("/users", userHandler.List)
	v1.GET("/users/:id", userHandler.Get)
	v1.POST("/users", userHandler.Create)
	v1.PUT("/users/:id", userHandler.Update, adminOnly)
	v1.DELETE("/users/:id", userHandler.Delete, adminOnly)
	v1.GET("/roles", roleHandler.List)
	v1.POST("/roles", roleHandler.Create, adminOnly)

	// --- Customers ---
	v1.GET("/customers", customerHandler.List)
	v1.GET("/customers/:id", customerHandler.Get)
	v1.POST("/customers", customerHandler.Create)
	v1.PUT("/customers/:id", customerHandler.Update, adminOnly)
	v1.DELETE("/customers/:id", customerHandler.Delete, adminOnly)

	// --- Image search: an admin affordance on the menu item form ---
	v1.GET("/images", imageHandler.Search, adminOnly)

	return e
}
