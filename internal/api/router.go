package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/backoffice/console-api/internal/api/handler"
	"github.com/backoffice/console-api/internal/api/middleware"
	"github.com/backoffice/console-api/internal/core/domain"
	"github.com/backoffice/console-api/internal/core/ports"
	"github.com/backoffice/console-api/internal/core/service"
	mongorepo "github.com/backoffice/console-api/internal/infrastructure/db/mongo"
	redisrepo "github.com/backoffice/console-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
//
// The audit sink and trail are constructed by the caller so the sink's worker
// pool lifecycle stays under main's control.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, trail ports.AuditTrail, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	permissionRepo := mongorepo.NewPermissionRepository(db)
	productRepo := mongorepo.NewProductRepository(db)
	clientRepo := mongorepo.NewClientRepository(db)
	orderRepo := mongorepo.NewOrderRepository(db)
	commentRepo := mongorepo.NewCommentRepository(db)
	matrixCache := redisrepo.NewMatrixCache(rdb)

	// --- Services ---
	permissionService := service.NewPermissionService(userRepo, permissionRepo, matrixCache, audit, log)
	authService := service.NewAuthService(userRepo, permissionService, jwtSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, log)
	productService := service.NewProductService(productRepo, log)
	clientService := service.NewClientService(clientRepo, log)
	orderService := service.NewOrderService(orderRepo, clientRepo, productRepo, audit, log)
	commentService := service.NewCommentService(commentRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	permissionHandler := handler.NewPermissionHandler(permissionService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	clientHandler := handler.NewClientHandler(clientService)
	orderHandler := handler.NewOrderHandler(orderService)
	commentHandler := handler.NewCommentHandler(commentService)
	auditHandler := handler.NewAuditHandler(trail)

	auth := middleware.Auth(jwtSecret)
	guard := func(resource domain.Resource, action domain.Action) echo.MiddlewareFunc {
		return middleware.Authorize(permissionService, audit, resource, action)
	}

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, auth)

	api := e.Group("/v1", auth)

	// --- Products ---
	products := api.Group("/products")
	products.GET("", productHandler.List, guard(domain.ResourceProducts, domain.ActionView))
	products.GET("/:id", productHandler.Get, guard(domain.ResourceProducts, domain.ActionView))
	products.POST("", productHandler.Create, guard(domain.ResourceProducts, domain.ActionCreate))
	products.PUT("/:id", productHandler.Update, guard(domain.ResourceProducts, domain.ActionUpdate))
	products.DELETE("/:id", productHandler.Delete, guard(domain.ResourceProducts, domain.ActionDelete))

	// --- Clients ---
	clients := api.Group("/clients")
	clients.GET("", clientHandler.List, guard(domain.ResourceClients, domain.ActionView))
	clients.GET("/:id", clientHandler.Get, guard(domain.ResourceClients, domain.ActionView))
	clients.POST("", clientHandler.Create, guard(domain.ResourceClients, domain.ActionCreate))
	clients.PUT("/:id", clientHandler.Update, guard(domain.ResourceClients, domain.ActionUpdate))
	clients.DELETE("/:id", clientHandler.Delete, guard(domain.ResourceClients, domain.ActionDelete))

	// --- Orders ---
	orders := api.Group("/orders")
	orders.GET("", orderHandler.List, guard(domain.ResourceOrders, domain.ActionView))
	orders.GET("/:id", orderHandler.Get, guard(domain.ResourceOrders, domain.ActionView))
	orders.POST("", orderHandler.Create, guard(domain.ResourceOrders, domain.ActionCreate))
	orders.PATCH("/:id/status", orderHandler.UpdateStatus, guard(domain.ResourceOrders, domain.ActionUpdate))
	orders.DELETE("/:id", orderHandler.Delete, guard(domain.ResourceOrders, domain.ActionDelete))

	// --- Comments ---
	comments := api.Group("/comments")
	comments.GET("", commentHandler.List, guard(domain.ResourceComments, domain.ActionView))
	comments.GET("/:id", commentHandler.Get, guard(domain.ResourceComments, domain.ActionView))
	comments.POST("", commentHandler.Create, guard(domain.ResourceComments, domain.ActionCreate))
	comments.PUT("/:id", commentHandler.Update, guard(domain.ResourceComments, domain.ActionUpdate))
	comments.DELETE("/:id", commentHandler.Delete, guard(domain.ResourceComments, domain.ActionDelete))

	// --- Users & permissions ---
	users := api.Group("/users")
	users.GET("", userHandler.List, guard(domain.ResourceUsers, domain.ActionView))
	users.GET("/:id", userHandler.Get, guard(domain.ResourceUsers, domain.ActionView))
	users.POST("", userHandler.Create, guard(domain.ResourceUsers, domain.ActionCreate))
	users.PUT("/:id", userHandler.Update, guard(domain.ResourceUsers, domain.ActionUpdate))
	users.DELETE("/:id", userHandler.Delete, guard(domain.ResourceUsers, domain.ActionDelete))

	permissions := api.Group("/permissions")
	permissions.GET("/:user_id", permissionHandler.Get, guard(domain.ResourceUsers, domain.ActionView))
	permissions.PUT("/:user_id", permissionHandler.Update, guard(domain.ResourceUsers, domain.ActionUpdate))

	// --- Audit trail ---
	api.GET("/audit/:actor_id", auditHandler.ListByActor, guard(domain.ResourceUsers, domain.ActionView))

	// --- Health probes & metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
