package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"devconnector/docs"
	"devconnector/internal/auth"
	"devconnector/internal/cache"
	"devconnector/internal/config"
	"devconnector/internal/db"
	"devconnector/internal/handler"
	"devconnector/internal/logger"
	"devconnector/internal/metrics"
	"devconnector/internal/repository"
	"devconnector/internal/router"
	"devconnector/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title DevConnector API
// @version 1.0
// @description Developer social network API: accounts, posts with likes and comments, and developer profiles.
// @host localhost:3000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-auth-token
// @description Token returned by registration or login.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	cfg := config.Load()
	lg := logger.New(os.Stdout, cfg.Development())
	slog.SetDefault(lg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, lg)
	if err != nil {
		lg.Error("database init", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.ResetDB {
		lg.Warn("RESET_DB set, dropping all tables")
		db.Reset(gormDB, lg)
	}
	if err := db.Migrate(gormDB); err != nil {
		lg.Error("migrate", slog.Any("error", err))
		os.Exit(1)
	}

	var cacheClient *cache.Client
	if cfg.RedisAddr != "" {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := cacheClient.Ping(ctx); err != nil {
			lg.Warn("redis unreachable, continuing without shared cache", slog.Any("error", err))
		}
	} else {
		cacheClient = cache.NewLocal()
	}
	defer cacheClient.Close()

	m := metrics.New()
	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)

	authService := service.NewAuthService(userRepo, codec, m, lg)
	userService := service.NewUserService(userRepo, cacheClient)
	postService := service.NewPostService(postRepo, userRepo, cacheClient, m)
	profileService := service.NewProfileService(profileRepo, cacheClient, lg)

	e := echo.New()
	router.Register(e, lg, codec, m, router.Handlers{
		User:    handler.NewUserHandler(authService),
		Auth:    handler.NewAuthHandler(authService, userService),
		Post:    handler.NewPostHandler(postService),
		Profile: handler.NewProfileHandler(profileService),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	} else {
		docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort
	}
	lg.Info("swagger documentation", slog.String("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))

	go func() {
		lg.Info("server started", slog.String("port", cfg.ServerPort))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server start", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown", slog.Any("error", err))
	}
}
