package system

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"finch/internal/usecase/health"
)

// Checker — проверка зависимостей (реализует health.Checker).
type Checker interface {
	Check(ctx context.Context) health.Report
	CheckOne(ctx context.Context, name string) (health.Status, bool)
	Ready(ctx context.Context) bool
	Names() []string
}

// Controller — системные маршруты: health зависимостей, liveness, readiness.
type Controller struct {
	checker Checker
}

// New создаёт системный контроллер.
func New(checker Checker) *Controller {
	return &Controller{checker: checker}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", c.health)
	r.GET("/health/:service", c.service)
	r.GET("/liveness", c.live)
	r.GET("/readyness", c.ready)
}

// @Summary Сводное здоровье зависимостей
// @Tags system
// @Produce json
// @Success 200 {object} health.Report
// @Failure 503 {object} health.Report
// @Router /health [get]
func (c *Controller) health(ctx *gin.Context) {
	report := c.checker.Check(ctx.Request.Context())
	ctx.JSON(statusOf(report.IsHealthy), report)
}

// @Summary Здоровье одной зависимости (postgres, mongo, redis)
// @Tags system
// @Produce json
// @Param service path string true "Имя зависимости"
// @Success 200 {object} health.Status
// @Failure 404 {object} map[string]any
// @Failure 503 {object} health.Status
// @Router /health/{service} [get]
func (c *Controller) service(ctx *gin.Context) {
	name := ctx.Param("service")
	st, found := c.checker.CheckOne(ctx.Request.Context(), name)
	if !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown service: " + name, "services": c.checker.Names()})
		return
	}
	ctx.JSON(statusOf(st.IsHealthy), st)
}

func (c *Controller) live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (c *Controller) ready(ctx *gin.Context) {
	if !c.checker.Ready(ctx.Request.Context()) {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func statusOf(healthy bool) int {
	if healthy {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}
