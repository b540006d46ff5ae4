package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kamal-hamza/metadesigner/internal/core/services"
	"github.com/kamal-hamza/metadesigner/internal/observability"
)

// ServerConfig holds the HTTP settings of the web shell
type ServerConfig struct {
	Host         string
	Port         int
	Debug        bool
	EnableCORS   bool
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxUploadMB  int
}

// DefaultServerConfig returns the settings used when nothing is configured
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         12002,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		MaxUploadMB:  512,
	}
}

// Dependencies are the services the web shell drives
type Dependencies struct {
	Register *services.RegisterService
	List     *services.ListService
	Train    *services.TrainService
	Logger   *slog.Logger
	Gatherer prometheus.Gatherer
}

// Server is the web UI and JSON API for dataset collection
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	deps       Dependencies
	logger     *slog.Logger
	maxUpload  int64
	startTime  time.Time
}

// NewServer builds the gin engine and routes
func NewServer(cfg ServerConfig, deps Dependencies) (*Server, error) {
	if deps.Register == nil || deps.List == nil || deps.Train == nil {
		return nil, errors.New("web server needs register, list and train services")
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	logger := observability.OrDiscard(deps.Logger)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.Use(gin.Recovery())

	if cfg.EnableCORS {
		corsConfig := cors.DefaultConfig()
		if len(cfg.CORSOrigins) == 0 {
			corsConfig.AllowAllOrigins = true
		} else {
			corsConfig.AllowOrigins = cfg.CORSOrigins
		}
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", RequestIDHeader}
		corsConfig.ExposeHeaders = []string{RequestIDHeader}
		engine.Use(cors.New(corsConfig))
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	engine.SetHTMLTemplate(tmpl)

	maxUpload := int64(cfg.MaxUploadMB) << 20
	if maxUpload <= 0 {
		maxUpload = int64(DefaultServerConfig().MaxUploadMB) << 20
	}
	engine.MaxMultipartMemory = 32 << 20

	s := &Server{
		engine:    engine,
		deps:      deps,
		logger:    logger,
		maxUpload: maxUpload,
		startTime: time.Now(),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api")
	{
		designers := api.Group("/designers")
		designers.POST("", BodyLimit(s.maxUpload), s.handleRegister)
		designers.GET("", s.handleListDesigners)
		designers.GET("/:hash", s.handleGetDesigner)

		api.POST("/train", s.handleTrain)
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting web server", "addr", s.httpServer.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return s.Stop()
}

// Stop shuts the HTTP server down, waiting up to 10 seconds for in-flight uploads
func (s *Server) Stop() error {
	s.logger.Info("stopping web server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}
