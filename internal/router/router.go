package router

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"devconnector/internal/auth"
	"devconnector/internal/handler"
	"devconnector/internal/logger"
	"devconnector/internal/metrics"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	User    *handler.UserHandler
	Auth    *handler.AuthHandler
	Post    *handler.PostHandler
	Profile *handler.ProfileHandler
}

// Register wires middleware and routes.
func Register(e *echo.Echo, log *slog.Logger, codec *auth.TokenCodec, m *metrics.Metrics, h Handlers) {
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, auth.TokenHeader},
	}))
	e.Use(m.Middleware())

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API Running")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	guard := auth.Guard(codec, log)
	api := e.Group("/api")

	api.POST("/users", h.User.Register)

	api.GET("/auth", h.Auth.Me, guard)
	api.POST("/auth", h.Auth.Login)

	posts := api.Group("/posts", guard)
	posts.POST("", h.Post.Create)
	posts.GET("", h.Post.List)
	posts.GET("/:id", h.Post.Get)
	posts.DELETE("/:id", h.Post.Delete)
	posts.PUT("/like/:id", h.Post.Like)
	posts.PUT("/unlike/:id", h.Post.Unlike)
	posts.POST("/comment/:id", h.Post.Comment)
	posts.DELETE("/comment/:id/:comment_id", h.Post.DeleteComment)

	profile := api.Group("/profile")
	profile.GET("", h.Profile.List)
	profile.GET("/user/:user_id", h.Profile.GetByUser)
	profile.GET("/me", h.Profile.Me, guard)
	profile.POST("", h.Profile.Upsert, guard)
	profile.DELETE("", h.Profile.DeleteAccount, guard)
	profile.PUT("/experience", h.Profile.AddExperience, guard)
	profile.DELETE("/experience/:exp_id", h.Profile.RemoveExperience, guard)
	profile.PUT("/education", h.Profile.AddEducation, guard)
	profile.DELETE("/education/:edu_id", h.Profile.RemoveEducation, guard)
}
