package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"finch/internal/ports"
)

// Заголовки ограничения запросов.
const (
	HeaderLimit     = "X-RateLimit-Limit"
	HeaderRemaining = "X-RateLimit-Remaining"
	HeaderReset     = "X-RateLimit-Reset"
	HeaderStatus    = "X-RateLimit-Status"

	rateLimitKeyPrefix = "rate_limit:"

	// hitTimeout ограничивает ожидание хранилища счётчиков, после него запрос пропускается.
	hitTimeout = 200 * time.Millisecond
)

// RateLimitConfig — настройки ограничения запросов.
type RateLimitConfig struct {
	Limit  int           // запросов на клиента за окно; <= 0 — ограничение выключено
	Window time.Duration // длина фиксированного окна
}

// exempt — служебные маршруты, которые не ограничиваются.
func exempt(path string) bool {
	switch {
	case path == MetricsPath, path == "/liveness", path == "/readyness":
		return true
	case path == "/health", strings.HasPrefix(path, "/health/"):
		return true
	}
	return false
}

// RateLimit — фиксированное окно на клиента (по IP) в общем хранилище счётчиков.
// Если хранилище недоступно, запрос пропускается с заголовком X-RateLimit-Status: unavailable.
func RateLimit(store ports.IRateWindow, cfg RateLimitConfig, log *slog.Logger) gin.HandlerFunc {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	limit := strconv.Itoa(cfg.Limit)
	retryAfter := strconv.Itoa(int(cfg.Window.Seconds()))

	return func(c *gin.Context) {
		if cfg.Limit <= 0 || exempt(c.Request.URL.Path) {
			c.Next()
			return
		}

		key := rateLimitKeyPrefix + c.ClientIP()
		hitCtx, cancel := context.WithTimeout(c.Request.Context(), hitTimeout)
		count, resetIn, err := store.Hit(hitCtx, key, cfg.Window)
		cancel()
		if err != nil {
			log.Warn("rate limiter unavailable, allowing request", "key", key, "error", err)
			rateLimitDecisions.WithLabelValues("skipped").Inc()
			c.Header(HeaderStatus, "unavailable")
			c.Next()
			return
		}

		if resetIn <= 0 {
			resetIn = cfg.Window
		}
		c.Header(HeaderLimit, limit)
		c.Header(HeaderReset, strconv.FormatInt(time.Now().Add(resetIn).Unix(), 10))

		if count > int64(cfg.Limit) {
			rateLimitDecisions.WithLabelValues("rejected").Inc()
			c.Header(HeaderRemaining, "0")
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		rateLimitDecisions.WithLabelValues("allowed").Inc()
		c.Header(HeaderRemaining, strconv.FormatInt(int64(cfg.Limit)-count, 10))
		c.Next()
	}
}
