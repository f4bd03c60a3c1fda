package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"campaign-pulse/src/auth"
	"campaign-pulse/src/interfaces"
	"campaign-pulse/src/logger"
	"campaign-pulse/src/models"
	"campaign-pulse/src/subscription"
	"campaign-pulse/src/telemetry"
	"campaign-pulse/src/utils"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// DashboardServer
// -----------------------------------------------------------------------------

type DashboardServer struct {
	Config    *models.MConfig
	Logger    *logger.Logger
	Metrics   interfaces.IMetricSource
	Auth      *auth.Service
	Telemetry *telemetry.Metrics
	Hub       *Hub
	Alerts    *utils.RingBuffer[models.MAlert] // recent alerts, may be nil

	engine       *gin.Engine
	httpServer   *http.Server
	loginLimiter *ipRateLimiter
	calendar     *utils.BusinessCalendar
	startedAt    time.Time
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewDashboardServer(
	cfg *models.MConfig,
	log *logger.Logger,
	source interfaces.IMetricSource,
	authService *auth.Service,
	registry *subscription.Registry,
	tel *telemetry.Metrics,
) *DashboardServer {
	// Set Gin mode
	if !strings.EqualFold(cfg.LogLevel, "DEBUG") {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &DashboardServer{
		Config:       cfg,
		Logger:       log,
		Metrics:      source,
		Auth:         authService,
		Telemetry:    tel,
		Hub:          NewHub(registry, log.Named("Hub"), tel),
		engine:       gin.New(),
		loginLimiter: newIPRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst),
		calendar:     utils.NewBusinessCalendar(utils.DefaultMIC),
		startedAt:    time.Now(),
	}

	s.engine.Use(gin.Recovery(), s.requestLogger(), corsMiddleware())

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *DashboardServer) setupRoutes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.getHealth)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.loginLimiter.middleware(), s.register)
	authGroup.POST("/login", s.loginLimiter.middleware(), s.login)
	authGroup.GET("/me", s.requireAuth(), s.me)

	protected := api.Group("", s.requireAuth())
	protected.GET("/dashboard/metrics", s.getMetrics)
	protected.GET("/dashboard/real-time", s.getRealTime)
	protected.GET("/dashboard/revenue-history", s.getRevenueHistory)
	protected.GET("/dashboard/user-growth", s.getUserGrowth)
	protected.GET("/campaigns", s.listCampaigns)
	protected.GET("/campaigns/:id", s.getCampaign)
	protected.GET("/analytics", s.getAnalytics)
	protected.GET("/alerts", s.getAlerts)
	protected.GET("/reports", s.getReport)
	protected.GET("/reports/export.csv", s.exportReportCSV)

	if s.Telemetry != nil {
		s.engine.GET("/metrics", gin.WrapH(s.Telemetry.Handler()))
	}

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler exposes the router, mainly for httptest.
func (s *DashboardServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start runs the hub loop and serves HTTP until Stop. It returns nil on a clean shutdown.
func (s *DashboardServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.Hub.Run()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) Stop(ctx context.Context) error {
	// Clean shutdown
	s.Hub.Stop()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Debug("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
