package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"finch/internal/api/http/middlewares"
)

// ServerConfig — настройки HTTP-сервера. Переменные: FINCH_SERVER_HOST, FINCH_SERVER_PORT, FINCH_SERVER_CORS_ORIGINS.
type ServerConfig struct {
	Host        string   `split_words:"true" default:"0.0.0.0"`
	Port        string   `split_words:"true" default:"8080"`
	CORSOrigins []string `split_words:"true" default:"*"`
}

// Controller — контракт: контроллер регистрирует свои маршруты на роутере.
type Controller interface {
	RegisterRoutes(r *gin.Engine)
}

// Server — API-сервер: конфиг, мидлвари и список контроллеров.
type Server struct {
	cfg         ServerConfig
	log         *slog.Logger
	middlewares []gin.HandlerFunc
	controllers []Controller
	srv         *http.Server
}

// NewServer создаёт сервер с конфигом.
func NewServer(cfg ServerConfig, log *slog.Logger) *Server {
	return &Server{cfg: cfg, log: log}
}

// Use добавляет мидлвари после стандартных (recovery, CORS, request id, лог, метрики).
func (s *Server) Use(mw ...gin.HandlerFunc) {
	s.middlewares = append(s.middlewares, mw...)
}

// AddController добавляет один или несколько контроллеров.
func (s *Server) AddController(c ...Controller) {
	s.controllers = append(s.controllers, c...)
}

// Handler собирает роутер со всеми мидлварями и маршрутами.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(s.corsConfig()))
	r.Use(middlewares.RequestID, middlewares.RequestLogger(s.log), middlewares.PrometheusMetrics)
	r.Use(s.middlewares...)

	r.GET(middlewares.MetricsPath, gin.WrapH(promhttp.Handler()))
	for _, c := range s.controllers {
		c.RegisterRoutes(r)
	}
	return r
}

// corsConfig: "*" в списке разрешает любой origin. Клиенты только читают, куки не нужны.
func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{middlewares.HeaderLimit, middlewares.HeaderRemaining, middlewares.HeaderReset, middlewares.HeaderStatus, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(s.cfg.CORSOrigins) == 0 || slices.Contains(s.cfg.CORSOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.cfg.CORSOrigins
	}
	return cfg
}

// Start запускает сервер и блокируется до отмены ctx, затем делает graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	s.srv = &http.Server{
		Addr:         s.cfg.Host + ":" + s.cfg.Port,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
