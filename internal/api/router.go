package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/crewdesk/member-portal/docs"
	"github.com/crewdesk/member-portal/internal/api/handler"
	"github.com/crewdesk/member-portal/internal/api/middleware"
	"github.com/crewdesk/member-portal/internal/core/domain"
	"github.com/crewdesk/member-portal/internal/core/ports"
	"github.com/crewdesk/member-portal/internal/core/service"
	"github.com/crewdesk/member-portal/internal/infrastructure/config"
)

// Deps bundles everything the router needs. Services are constructed in main
// so the dispatcher's lifecycle stays owned by the entrypoint.
type Deps struct {
	Cfg        *config.Config
	Log        zerolog.Logger
	DB         *mongo.Database
	Redis      *redis.Client
	Identity   ports.IdentityBackend
	Onboarding ports.OnboardingRepository
	Profile    ports.OnboardingService
	Sessions   ports.WebSessionStore
	Events     ports.EventSink
	Pipeline   *service.Gate
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	gate := middleware.NewGate(d.Pipeline, d.Identity, d.Onboarding, d.Sessions, d.Events, d.Cfg.SessionSecret, d.Log)
	e.Use(gate.Resolve())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Identity, d.Sessions, d.Events, d.Cfg.SessionSecret, !d.Cfg.IsDevelopment(), d.Cfg.SessionTTL)
	onboardingHandler := handler.NewOnboardingHandler(d.Profile)
	adminHandler := handler.NewAdminHandler(d.Pipeline, d.Identity, d.Events)
	pages := handler.NewPagesHandler()

	// --- Public-only routes (authenticated callers are routed away) ---
	pub := e.Group("", gate.PublicOnly())
	pub.GET(domain.PathLogin, authHandler.LoginPage)
	pub.POST(domain.PathLogin, authHandler.Login)
	pub.GET("/register", authHandler.RegisterPage)
	pub.POST("/register", authHandler.Register)
	pub.GET("/reset-password", authHandler.ResetPasswordPage)
	pub.GET("/auth/oauth", authHandler.OAuthStart)

	// --- OAuth callback and logout (no guard; they manage session state) ---
	e.GET("/auth/callback", authHandler.OAuthCallback)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Approval-pending page: session required, access not ---
	e.GET(domain.PathApprovalNeeded, pages.ApprovalNeeded)

	// --- Protected routes ---
	prot := e.Group("", gate.Protect())
	prot.GET(domain.PathDashboard, pages.Dashboard)
	prot.GET(domain.PathDashboard+"/settings", pages.Settings)
	prot.GET(domain.PathOnboarding, onboardingHandler.Show)
	prot.POST(domain.PathOnboarding, onboardingHandler.Complete)

	// --- Admin sub-area: role stage on top of the gate ---
	admin := e.Group("/admin", gate.Protect(), gate.RequireRole(domain.RoleAdmin, domain.PathDashboard))
	admin.GET("", pages.Admin)
	admin.POST("/users/:id/revoke-sessions", adminHandler.RevokeSessions)

	// --- Ops endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
