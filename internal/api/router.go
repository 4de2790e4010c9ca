package api

import (
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/duckcorp/portal/internal/api/docs"
	"github.com/duckcorp/portal/internal/api/handler"
	"github.com/duckcorp/portal/internal/api/middleware"
	"github.com/duckcorp/portal/internal/core/domain"
	"github.com/duckcorp/portal/internal/core/ports"
)

// RouterDeps carries everything the HTTP layer needs.
type RouterDeps struct {
	Auth          ports.AuthService
	Users         ports.UserDirectory
	Tags          ports.TagRegistry
	Announcements ports.EntryLog
	Chat          ports.EntryLog
	Blacklist     ports.Blacklist
	Files         ports.FileLinks
	Search        ports.SearchRelay

	// Health lists the dependencies checked by /health/ready.
	Health map[string]handler.Pinger
	Log    zerolog.Logger

	// TrustProxy takes the client identifier from X-Forwarded-For, but only
	// when the request arrives from a loopback, private or TrustedProxies
	// address.
	TrustProxy     bool
	TrustedProxies []*net.IPNet
	BlockedURL     string
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// @title                       Duck Corp Portal API
// @version                     1.0
// @description                 Session, directory and messaging endpoints of the Duck Corp portal.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func NewRouter(d RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.IPExtractor = clientIPExtractor(d.TrustProxy, d.TrustedProxies)

	// The blacklist runs before routing so no route, public or not, is reachable.
	e.Pre(middleware.BlacklistGate(d.Blacklist, d.BlockedURL, d.Log))

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(middleware.Metrics())
	e.Use(middleware.Session(d.Auth, d.Log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Users)
	userHandler := handler.NewUserHandler(d.Users)
	tagHandler := handler.NewTagHandler(d.Tags)
	announcementHandler := handler.NewEntryHandler(d.Announcements)
	chatHandler := handler.NewEntryHandler(d.Chat)
	blacklistHandler := handler.NewBlacklistHandler(d.Blacklist)
	fileHandler := handler.NewFileHandler(d.Files)
	searchHandler := handler.NewSearchHandler(d.Search, d.Log)

	requireSession := middleware.RequireSession()
	role := func(required domain.Role, policy domain.AuthPolicy) echo.MiddlewareFunc {
		return middleware.RequireRole(required, policy, d.Users)
	}

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/login.html")
	})

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)
	e.POST("/logout", authHandler.Logout)

	apiGroup := e.Group("/api")
	apiGroup.GET("/session", authHandler.Session)
	apiGroup.POST("/change-password", authHandler.ChangePassword, requireSession)

	// --- Users (admin, snapshot role) ---
	apiGroup.GET("/users", userHandler.List, role(domain.RoleAdmin, domain.TrustSnapshot))
	apiGroup.POST("/user/set-role", userHandler.SetRole, role(domain.RoleAdmin, domain.TrustSnapshot))
	apiGroup.POST("/user/add-tag", userHandler.AddTag, role(domain.RoleAdmin, domain.TrustSnapshot))

	// --- Tags ---
	apiGroup.GET("/tags", tagHandler.List)
	apiGroup.POST("/tags/create", tagHandler.Create, role(domain.RoleEmployee, domain.TrustSnapshot))

	// --- Announcements and chat ---
	apiGroup.GET("/announcements", announcementHandler.List)
	apiGroup.POST("/announce", announcementHandler.Post, role(domain.RoleAnnouncer, domain.RevalidateAgainstDirectory))
	apiGroup.GET("/chat", chatHandler.List)
	apiGroup.POST("/chat", chatHandler.Post, requireSession)

	apiGroup.GET("/files", fileHandler.List)

	// --- Blacklist (employee, live role) ---
	apiGroup.GET("/blacklist", blacklistHandler.List, role(domain.RoleEmployee, domain.RevalidateAgainstDirectory))
	apiGroup.POST("/blacklist", blacklistHandler.Add, role(domain.RoleEmployee, domain.RevalidateAgainstDirectory))

	e.GET("/proxy/search", searchHandler.Search)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func clientIPExtractor(trustProxy bool, ranges []*net.IPNet) echo.IPExtractor {
	if !trustProxy {
		return echo.ExtractIPDirect()
	}
	opts := make([]echo.TrustOption, 0, len(ranges))
	for _, r := range ranges {
		opts = append(opts, echo.TrustIPRange(r))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
