package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/config"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server exposes the projection pipeline over HTTP.
type Server struct {
	settings config.ServerSettings
	service  *projection.Service
	logger   *zap.Logger
	router   *gin.Engine
	handler  http.Handler
}

// New builds the router. A nil service uses the default engine and a nil
// logger discards logs.
func New(settings config.ServerSettings, service *projection.Service, logger *zap.Logger) *Server {
	if service == nil {
		service = projection.NewService(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.MaxBodyBytes <= 0 {
		settings.MaxBodyBytes = 1 << 20
	}

	s := &Server{settings: settings, service: service, logger: logger}

	router := gin.New()
	router.Use(errorHandler(logger))
	router.Use(requestLogger(logger))
	router.Use(limitBody(settings.MaxBodyBytes))

	router.GET("/health", s.health)
	api := router.Group("/api/v1")
	{
		api.GET("/products", s.listProducts)
		api.POST("/plan", s.buildPlan)
		api.POST("/projection", s.runProjection)
		api.POST("/net-values", s.netValues)
	}
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: ErrorDetail{Code: "NOT_FOUND", Message: "Not found"}})
	})
	s.router = router

	origins := settings.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
	}).Handler(router)
	return s
}

// Handler returns the CORS-wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.settings.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", zap.String("op", "serve"), zap.String("address", s.settings.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down API server", zap.String("op", "serve"))
		return srv.Shutdown(shutdownCtx)
	}
}
