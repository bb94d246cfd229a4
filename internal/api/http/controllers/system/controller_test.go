package system

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"finch/internal/mocks"
	"finch/internal/usecase/health"
)

func newTestRouter(t *testing.T, storageErr, cacheErr error) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIPriceRepository(ctrl)
	cache := mocks.NewMockICache(ctrl)
	repo.EXPECT().Ping(gomock.Any()).Return(storageErr).AnyTimes()
	cache.EXPECT().Ping(gomock.Any()).Return(cacheErr).AnyTimes()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	checker := health.NewChecker(log,
		health.Dependency{Name: "postgres", Pinger: repo, Critical: true},
		health.Dependency{Name: "redis", Pinger: cache},
	)
	r := gin.New()
	New(checker).RegisterRoutes(r)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	w := get(r, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"is_healthy":true,"services":{
		"postgres":{"is_healthy":true,"message":"postgres is healthy"},
		"redis":{"is_healthy":true,"message":"redis is healthy"}
	}}`, w.Body.String())
}

func TestHealth_CacheDown(t *testing.T) {
	r := newTestRouter(t, nil, errors.New("dial tcp: refused"))

	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/health").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/health/redis").Code)
	assert.Equal(t, http.StatusOK, get(r, "/health/postgres").Code)
	assert.Equal(t, http.StatusOK, get(r, "/readyness").Code)
}

func TestHealth_StorageDown(t *testing.T) {
	r := newTestRouter(t, errors.New("dial tcp: refused"), nil)

	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/health/postgres").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/readyness").Code)
	assert.Equal(t, http.StatusOK, get(r, "/liveness").Code)
}

func TestHealth_UnknownService(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	w := get(r, "/health/mysql")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"unknown service: mysql","services":["postgres","redis"]}`, w.Body.String())
}
