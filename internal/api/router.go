package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/poyobook/poyobook/internal/api/handler"
	"github.com/poyobook/poyobook/internal/api/middleware"
	"github.com/poyobook/poyobook/internal/core/ports"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	AuthService    ports.AuthService
	BoardService   ports.BoardService
	EntryService   ports.EntryService
	CaptchaService ports.CaptchaService
	Readiness      *handler.ReadinessHandler
	// ApexHost guards the account-management routes.
	ApexHost string
	Logger   zerolog.Logger
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
	e.Use(echoprometheus.NewMiddleware("poyobook"))
	e.Use(middleware.Identity(deps.AuthService))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	boardHandler := handler.NewBoardHandler(deps.BoardService)
	entryHandler := handler.NewEntryHandler(deps.EntryService, deps.BoardService)
	captchaHandler := handler.NewCaptchaHandler(deps.CaptchaService)

	requireApex := middleware.RequireApex(deps.ApexHost)
	requireAuth := middleware.RequireAuth()

	// --- Public routes, any host ---
	e.GET("/", boardHandler.Root)
	e.GET("/captcha", captchaHandler.Issue)
	e.POST("/addEntry", entryHandler.Add)
	e.GET("/retrieveImage/:id", entryHandler.RetrieveImage)
	e.GET("/retrieveCustomStyles/:id", boardHandler.RetrieveCustomStyles)

	// --- Account management, apex host only ---
	auth := e.Group("/auth", requireApex)
	auth.GET("", authHandler.Whoami)
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/recover", authHandler.RecoverStart)
	auth.GET("/recover/:token", authHandler.RecoverVerify)
	auth.POST("/recover/:token", authHandler.RecoverComplete)

	e.GET("/logout", authHandler.Logout, requireApex)
	e.GET("/dashboard", boardHandler.Dashboard, requireApex, requireAuth)
	e.POST("/setConfig", boardHandler.SetConfig, requireApex, requireAuth)
	e.POST("/setCustomStyles", boardHandler.SetCustomStyles, requireApex, requireAuth)
	e.DELETE("/deleteImage/:id", entryHandler.Delete, requireApex, requireAuth)

	// --- Observability ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", deps.Readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
