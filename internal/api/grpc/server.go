package grpc

import (
	"context"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	healthv1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"finch/internal/api/grpc/health"
	"finch/internal/api/grpc/interceptors"
)

// ServerConfig — настройки gRPC-сервера. Переменные: FINCH_GRPC_ENABLED, FINCH_GRPC_HOST, FINCH_GRPC_PORT.
type ServerConfig struct {
	Enabled bool   `split_words:"true" default:"false"`
	Host    string `split_words:"true" default:"0.0.0.0"`
	Port    string `split_words:"true" default:"9090"`
}

// Server — gRPC-сервер: регистрирует сервисы и слушает порт.
type Server struct {
	grpc *grpc.Server
	addr string
	log  *slog.Logger
}

// NewServer создаёт gRPC-сервер с Health и reflection. Интерцепторы: recovery, затем логирование.
func NewServer(cfg ServerConfig, checker health.Checker, log *slog.Logger) *Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		interceptors.RecoveryUnaryInterceptor(log),
		interceptors.LoggingUnaryInterceptor(log),
	))
	healthv1.RegisterHealthServer(s, health.New(checker))
	reflection.Register(s)
	return &Server{grpc: s, addr: cfg.Host + ":" + cfg.Port, log: log}
}

// Serve принимает соединения на lis (блокируется).
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("grpc server listening", "addr", lis.Addr().String())
	return s.grpc.Serve(lis)
}

// Start слушает адрес из конфига, блокируется до отмены ctx и затем останавливает сервер.
func (s *Server) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(lis) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.grpc.GracefulStop()
	return nil
}
