// Package health — стандартный сервис grpc.health.v1.Health поверх проверок зависимостей.
package health

import (
	"context"

	"google.golang.org/grpc/codes"
	healthv1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	depcheck "finch/internal/usecase/health"
)

// Checker — проверка зависимостей (реализует usecase/health.Checker).
type Checker interface {
	Check(ctx context.Context) depcheck.Report
	CheckOne(ctx context.Context, name string) (depcheck.Status, bool)
}

// Server реализует Health/Check. Пустое имя сервиса — сводное состояние, иначе имя зависимости.
type Server struct {
	healthv1.UnimplementedHealthServer
	checker Checker
}

// New создаёт gRPC health-сервер.
func New(checker Checker) *Server {
	return &Server{checker: checker}
}

// Check выполняет живую проверку зависимостей.
func (s *Server) Check(ctx context.Context, req *healthv1.HealthCheckRequest) (*healthv1.HealthCheckResponse, error) {
	if req.GetService() == "" {
		return response(s.checker.Check(ctx).IsHealthy), nil
	}
	st, found := s.checker.CheckOne(ctx, req.GetService())
	if !found {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}
	return response(st.IsHealthy), nil
}

func response(healthy bool) *healthv1.HealthCheckResponse {
	if healthy {
		return &healthv1.HealthCheckResponse{Status: healthv1.HealthCheckResponse_SERVING}
	}
	return &healthv1.HealthCheckResponse{Status: healthv1.HealthCheckResponse_NOT_SERVING}
}
