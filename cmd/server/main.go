package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"bdrdragon/docs"
	"bdrdragon/internal/auth"
	"bdrdragon/internal/cache"
	"bdrdragon/internal/config"
	"bdrdragon/internal/db"
	"bdrdragon/internal/handler"
	"bdrdragon/internal/logger"
	"bdrdragon/internal/repository"
	"bdrdragon/internal/router"
	"bdrdragon/internal/service"
)

// @title BDR Dragon API
// @version 1.0
// @description Sales-operations API: salespeople, markets, KPI actuals and quota pacing, recurring tasks.
// @host localhost:4000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Browsers use the access_token cookie instead.
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("resolve timezone")
	}

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("database init")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal().Err(err).Msg("reset database")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	authService, handlers := wire(cfg, gormDB, cacheClient, service.NewClock(loc))

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, cfg, log, authService, handlers)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Environment).
			Str("timezone", loc.String()).
			Str("swagger", swaggerURL(cfg)).
			Msg("server listening")
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	if err := cacheClient.Close(); err != nil {
		log.Warn().Err(err).Msg("close cache")
	}
	if err := db.Close(gormDB); err != nil {
		log.Warn().Err(err).Msg("close database")
	}
}

func wire(cfg *config.Config, gormDB *gorm.DB, cacheClient *cache.Client, clock service.Clock) (service.AuthService, router.Handlers) {
	userRepo := repository.NewUserRepository(gormDB)
	marketRepo := repository.NewMarketRepository(gormDB)
	kpiRepo := repository.NewKpiRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	integrationRepo := repository.NewIntegrationRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, marketRepo, cacheClient)
	marketService := service.NewMarketService(marketRepo, clock)
	kpiService := service.NewKpiService(userRepo, kpiRepo, clock)
	taskService := service.NewTaskService(taskRepo, clock)
	integrationService := service.NewIntegrationService(integrationRepo, clock)

	cookies := handler.CookieConfig{
		Secure:     cfg.IsProduction(),
		Domain:     cfg.Auth.CookieDomain,
		AccessTTL:  cfg.Auth.AccessTTL,
		RefreshTTL: cfg.Auth.RefreshTTL,
	}
	dbPinger := handler.PingFunc(func(ctx context.Context) error { return db.Ping(ctx, gormDB) })

	return authService, router.Handlers{
		Auth:        handler.NewAuthHandler(authService, userService, cookies),
		User:        handler.NewUserHandler(userService),
		Market:      handler.NewMarketHandler(marketService),
		Kpi:         handler.NewKpiHandler(kpiService),
		Task:        handler.NewTaskHandler(taskService),
		Integration: handler.NewIntegrationHandler(integrationService),
		Health:      handler.NewHealthHandler(cfg.Environment, dbPinger, cacheClient),
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.HTTP.Port
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimRight(host, "/") + "/swagger/index.html"
}
