package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"study-agent/config"
	"study-agent/corpus"
	"study-agent/download"
	"study-agent/pipeline"
	"study-agent/web/handlers"
	"study-agent/web/middleware"
	"study-agent/web/services"
)

type Server struct {
	router      *gin.Engine
	logger      *zap.Logger
	config      *config.Config
	rateLimiter *middleware.SessionRateLimiter
}

func NewServer(p *pipeline.Pipeline, store *corpus.Store, downloads *download.Service, sessions *services.SessionService, logger *zap.Logger, cfg *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(func(c *gin.Context) {
		c.Set("logger", logger)
		c.Next()
	})

	rateLimiter := middleware.NewSessionRateLimiter(middleware.RateLimiterConfig{
		MessagesPerMinute: cfg.RateLimitMessagesPerMin,
		BurstSize:         cfg.RateLimitBurstSize,
		CleanupInterval:   cfg.CleanupInterval,
	}, logger)

	server := &Server{
		router:      router,
		logger:      logger,
		config:      cfg,
		rateLimiter: rateLimiter,
	}

	server.setupRoutes(p, store, downloads, sessions)
	return server
}

func (s *Server) setupRoutes(p *pipeline.Pipeline, store *corpus.Store, downloads *download.Service, sessions *services.SessionService) {
	chatHandler := handlers.NewChatHandler(p, sessions, s.logger)
	browseHandler := handlers.NewBrowseHandler(store, s.logger)
	downloadHandler := handlers.NewDownloadHandler(downloads, s.logger)

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	api.Use(middleware.SessionMiddleware())

	api.POST("/chat", middleware.RateLimitMiddleware(s.rateLimiter), chatHandler.SendMessage)
	api.GET("/studies", browseHandler.ListStudies)
	api.GET("/studies/:project", browseHandler.GetStudy)
	api.GET("/stats", browseHandler.GetStats)
	api.POST("/download", downloadHandler.PackageStudies)
}

func (s *Server) Start(ctx context.Context, addr string) error {
	s.logger.Info("Starting web server", zap.String("address", addr))

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Web server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()

	s.logger.Info("Shutting down web server")
	s.rateLimiter.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
