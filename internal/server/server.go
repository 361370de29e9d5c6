package server

import (
	"context"
	"net"
	"net/http"

	"charity-transparency/internal/config"
	"charity-transparency/internal/handlers"
	"charity-transparency/internal/middleware"
	"charity-transparency/internal/repositories"
	"charity-transparency/internal/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	apiPrefix   = "/api/v1"
	maxBodySize = "1M"
)

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Health   *handlers.HealthCheckHandler
	Report   *handlers.ReportHandler
	Activity *handlers.ActivityHandler
	Donation *handlers.DonationHandler
	Expense  *handlers.ExpenseHandler
	Auth     *handlers.AuthHandler
	Audit    *handlers.AuditHandler
}

// Server owns the echo instance and its listener settings
type Server struct {
	echo *echo.Echo
	cfg  config.ServerConfig
}

// New builds the router with the middleware chain and every route
func New(
	cfg *config.Config,
	h Handlers,
	tokenService services.TokenServiceInterface,
	blacklistRepo repositories.BlacklistedTokenRepositoryInterface,
	gatherer prometheus.Gatherer,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.IPExtractor = middleware.ClientIPExtractor(cfg.Security.TrustedProxies)

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.CORS(cfg.Server.CORSAllowOrigins))
	e.Use(echomiddleware.BodyLimit(maxBodySize))

	e.GET("/health", h.Health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group(apiPrefix)
	registerPublicRoutes(api, h, cfg.Security)
	registerAdminRoutes(api.Group("/admin", middleware.RequireAuth(tokenService, blacklistRepo), middleware.RequireStaff()), h)

	return &Server{echo: e, cfg: cfg.Server}
}

func registerPublicRoutes(api *echo.Group, h Handlers, sec config.SecurityConfig) {
	api.GET("/transparency", h.Report.GetTransparency)
	api.GET("/campaigns/stats", h.Report.GetCampaignStats)

	api.GET("/activities", h.Activity.ListPublished)
	api.GET("/activities/:id", h.Activity.GetPublished)
	api.GET("/activities/:id/stats", h.Report.GetActivityStats)

	// intake and login get their own buckets so a burst of donations cannot lock staff out
	api.POST("/donations", h.Donation.Submit, middleware.RateLimiterWithConfig(sec.RateLimitPerSecond, sec.RateLimitBurst))
	api.POST("/auth/login", h.Auth.Login, middleware.RateLimiterWithConfig(sec.RateLimitPerSecond, sec.RateLimitBurst))
}

func registerAdminRoutes(admin *echo.Group, h Handlers) {
	admin.GET("/me", h.Auth.Me)
	admin.POST("/auth/logout", h.Auth.Logout)
	admin.GET("/kpi", h.Report.GetAdminKPI)
	admin.GET("/reports/transparency.xlsx", h.Report.ExportAdminReport)

	admin.GET("/donations", h.Donation.List)
	admin.GET("/donations/:id", h.Donation.Get)
	admin.POST("/donations/:id/confirm", h.Donation.Confirm)
	admin.POST("/donations/:id/reject", h.Donation.Reject)

	admin.GET("/expenses", h.Expense.List)
	admin.GET("/expenses/:id", h.Expense.Get)
	admin.POST("/expenses", h.Expense.Create)
	admin.PUT("/expenses/:id", h.Expense.Update)
	admin.DELETE("/expenses/:id", h.Expense.Delete, middleware.RequireAdmin())

	admin.GET("/activities", h.Activity.ListAll)
	admin.POST("/activities", h.Activity.Create)
	admin.PUT("/activities/:id", h.Activity.Update)
	admin.DELETE("/activities/:id", h.Activity.Delete, middleware.RequireAdmin())

	admin.GET("/audit-logs", h.Audit.List, middleware.RequireAdmin())
}

// Echo exposes the router, mainly for tests
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Addr is the listen address built from the server config
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, s.cfg.Port)
}

// Start listens until Shutdown is called. http.ErrServerClosed is not an error.
func (s *Server) Start() error {
	s.echo.Server.ReadTimeout = s.cfg.ReadTimeout
	s.echo.Server.WriteTimeout = s.cfg.WriteTimeout
	s.echo.Server.MaxHeaderBytes = 1 << 16

	if err := s.echo.Start(s.Addr()); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
