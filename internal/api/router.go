package api

import (
	"net/http"
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/social-network/docs"
	"github.com/99minutos/social-network/internal/api/handler"
	"github.com/99minutos/social-network/internal/api/middleware"
	"github.com/99minutos/social-network/internal/core/ports"
)

// Deps carries everything the router needs. Services are constructed once
// by the caller around a single database handle.
type Deps struct {
	Auth          ports.AuthService
	Accounts      ports.AccountService
	Posts         ports.PostService
	Relationships ports.RelationshipService

	JWTSecret   string
	Cookie      handler.CookieConfig
	CORSOrigins []string
	Readiness   map[string]handler.Pinger
	Log         zerolog.Logger
}

// httpMetrics registers its collectors with the default registry, which
// accepts them only once per process.
var httpMetrics = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddleware("socialnet")
})

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	// Recover sits innermost so panics reach the logger and metrics as errors.
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(httpMetrics())
	e.Use(echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{DisableErrorHandler: true}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Accounts, d.Cookie)
	postHandler := handler.NewPostHandler(d.Posts)
	userHandler := handler.NewUserHandler(d.Accounts, d.Relationships)
	requireAuth := middleware.Auth(d.JWTSecret)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/logout", authHandler.Logout)
	auth.GET("/user", authHandler.Me, requireAuth)

	// --- Post routes ---
	post := api.Group("/post", requireAuth)
	post.POST("/create", postHandler.Create)
	post.GET("/", postHandler.List)
	post.GET("/user", postHandler.ListOwn)
	post.DELETE("/delete/:id", postHandler.Delete)
	post.PUT("/like/:id", postHandler.ToggleLike)

	// --- User routes ---
	users := api.Group("/users", requireAuth)
	users.GET("/not-followed", userHandler.NotFollowed)
	users.GET("/following", userHandler.Following)
	users.GET("/followers", userHandler.Followers)
	users.PUT("/follow/:id", userHandler.Follow)
	users.PUT("/unfollow/:id", userHandler.Unfollow)
	users.PUT("/followers/remove/:id", userHandler.RemoveFollower)
	users.PUT("/update", userHandler.UpdateProfile)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
