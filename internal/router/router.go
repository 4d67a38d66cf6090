package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bdrdragon/internal/config"
	"bdrdragon/internal/handler"
	"bdrdragon/internal/model"
	"bdrdragon/internal/service"
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Market      *handler.MarketHandler
	Kpi         *handler.KpiHandler
	Task        *handler.TaskHandler
	Integration *handler.IntegrationHandler
	Health      *handler.HealthHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, log zerolog.Logger, authService service.AuthService, h Handlers) {
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(ContextLogger(log))
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", h.Health.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	requireAuth := JWT(authService)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public routes
	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/logout", h.Auth.Logout)
	authGroup.POST("/change-password", h.Auth.ChangePassword, requireAuth)
	authGroup.POST("/register", h.Auth.Register, requireAuth, requireAdmin)

	// Secured routes
	users := api.Group("/users", requireAuth)
	users.GET("/me", h.User.Me)
	users.PUT("/me", h.User.UpdateMe)

	api.GET("/market/me", h.Market.Mine, requireAuth)

	kpi := api.Group("/kpi", requireAuth)
	kpi.GET("/actuals", h.Kpi.Actuals)
	kpi.GET("/forecast", h.Kpi.Forecast)

	tasks := api.Group("/tasks", requireAuth)
	tasks.GET("/lists", h.Task.ListLists)
	tasks.POST("/lists", h.Task.CreateList)
	tasks.PUT("/lists/:id", h.Task.RenameList)
	tasks.DELETE("/lists/:id", h.Task.DeleteList)
	tasks.GET("", h.Task.ListTasks)
	tasks.POST("", h.Task.CreateTask)
	tasks.PUT("/:id", h.Task.UpdateTask)
	tasks.DELETE("/:id", h.Task.DeleteTask)

	// Admin routes
	admin := api.Group("/admin", requireAuth, requireAdmin)
	admin.GET("/users", h.User.ListUsers)
	admin.POST("/users", h.User.CreateUser)
	admin.PUT("/users/:id", h.User.UpdateUser)
	admin.POST("/users/:id/set-password", h.User.SetPassword)

	admin.GET("/markets", h.Market.List)
	admin.POST("/markets", h.Market.Create)
	admin.PUT("/markets/:id", h.Market.Update)
	admin.DELETE("/markets/:id", h.Market.Delete)

	admin.POST("/kpi/snapshots", h.Kpi.RecordSnapshot)

	admin.GET("/integration-status", h.Integration.Status)
	admin.POST("/sync", h.Integration.Sync)
}
