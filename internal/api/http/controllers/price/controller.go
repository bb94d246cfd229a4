package price

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"finch/internal/domain"
	"finch/internal/ports"
)

// Controller — маршруты цены биткоина: текущая цена и история.
type Controller struct {
	uc  ports.IPriceUseCase
	log *slog.Logger
}

// New создаёт контроллер цены.
func New(uc ports.IPriceUseCase, log *slog.Logger) *Controller {
	return &Controller{uc: uc, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	g := r.Group("/bitcoin")

	g.GET("/current-price", c.currentPrice)
	g.GET("/price-history", c.priceHistory)
}

// @Summary Текущая цена биткоина
// @Description Цена в USD. Берётся из кэша, при промахе запрашивается у CoinGecko и сохраняется в БД.
// @Tags bitcoin
// @Produce json
// @Success 200 {object} CurrentPriceResponse
// @Failure 429 {object} ErrorResponse "Апстрим ограничил запросы"
// @Failure 502 {object} ErrorResponse "Некорректный ответ апстрима"
// @Failure 503 {object} ErrorResponse "Апстрим или хранилище недоступны"
// @Router /bitcoin/current-price [get]
func (c *Controller) currentPrice(ctx *gin.Context) {
	price, err := c.uc.CurrentPrice(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "current price failed", err)
		return
	}
	ctx.JSON(http.StatusOK, CurrentPriceResponse{Price: price})
}

// @Summary История цены
// @Description Наблюдения с start_time <= timestamp <= end_time, новые сначала.
// @Tags bitcoin
// @Produce json
// @Param start_time query string true "ISO8601"
// @Param end_time query string true "ISO8601"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse "Некорректный диапазон"
// @Failure 503 {object} ErrorResponse "Хранилище недоступно"
// @Router /bitcoin/price-history [get]
func (c *Controller) priceHistory(ctx *gin.Context) {
	var q HistoryQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		c.fail(ctx, "price history bind failed", fmt.Errorf("%w: start_time and end_time are required", domain.ErrValidation))
		return
	}
	start, err := parseTime(q.StartTime)
	if err != nil {
		c.fail(ctx, "price history bad start_time", fmt.Errorf("%w: start_time: %w", domain.ErrValidation, err))
		return
	}
	end, err := parseTime(q.EndTime)
	if err != nil {
		c.fail(ctx, "price history bad end_time", fmt.Errorf("%w: end_time: %w", domain.ErrValidation, err))
		return
	}

	list, err := c.uc.PriceHistory(ctx.Request.Context(), start, end)
	if err != nil {
		c.fail(ctx, "price history failed", err)
		return
	}
	items := make([]PriceItem, len(list))
	for i, p := range list {
		items[i] = PriceItem{PriceUSD: p.PriceUSD, Timestamp: p.Timestamp, Source: p.Source}
	}
	ctx.JSON(http.StatusOK, HistoryResponse{Prices: items})
}

// fail пишет ответ с ошибкой по таксономии. 429 всегда несёт Retry-After.
func (c *Controller) fail(ctx *gin.Context, msg string, err error) {
	status := StatusFor(err)
	switch {
	case status >= http.StatusInternalServerError:
		c.log.Error(msg, "status", status, "error", err)
	default:
		c.log.Warn(msg, "status", status, "error", err)
	}
	if status == http.StatusTooManyRequests {
		ctx.Header("Retry-After", domain.RetryAfterHint(err))
	}
	ctx.JSON(status, ErrorResponse{Error: publicMessage(err)})
}
