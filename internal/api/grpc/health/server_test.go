package health

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthv1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"finch/internal/mocks"
	depcheck "finch/internal/usecase/health"
)

func newHealthClient(t *testing.T, cacheErr error) healthv1.HealthClient {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIPriceRepository(ctrl)
	cache := mocks.NewMockICache(ctrl)
	repo.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Ping(gomock.Any()).Return(cacheErr).AnyTimes()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	checker := depcheck.NewChecker(log,
		depcheck.Dependency{Name: "postgres", Pinger: repo, Critical: true},
		depcheck.Dependency{Name: "redis", Pinger: cache},
	)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	healthv1.RegisterHealthServer(srv, New(checker))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthv1.NewHealthClient(conn)
}

func TestCheck(t *testing.T) {
	client := newHealthClient(t, errors.New("redis down"))
	ctx := context.Background()

	resp, err := client.Check(ctx, &healthv1.HealthCheckRequest{Service: "postgres"})
	require.NoError(t, err)
	assert.Equal(t, healthv1.HealthCheckResponse_SERVING, resp.GetStatus())

	resp, err = client.Check(ctx, &healthv1.HealthCheckRequest{Service: "redis"})
	require.NoError(t, err)
	assert.Equal(t, healthv1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	resp, err = client.Check(ctx, &healthv1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthv1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	_, err = client.Check(ctx, &healthv1.HealthCheckRequest{Service: "kafka"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCheck_AllHealthy(t *testing.T) {
	client := newHealthClient(t, nil)

	resp, err := client.Check(context.Background(), &healthv1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthv1.HealthCheckResponse_SERVING, resp.GetStatus())
}
