// Package coingecko — клиент публичного API CoinGecko для текущей цены отслеживаемого актива.
package coingecko

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tidwall/gjson"

	"finch/internal/domain"
	"finch/internal/ports"
)

var _ ports.IPriceProvider = (*Client)(nil)

const maxBodyBytes = 1 << 20

var upstreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "CoinGecko request duration in seconds by outcome",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// Config — настройки апстрима. Переменные: FINCH_COINGECKO_BASE_URL, FINCH_COINGECKO_TIMEOUT, FINCH_COINGECKO_USER_AGENT.
type Config struct {
	BaseURL   string        `split_words:"true" default:"https://api.coingecko.com/api/v3"`
	Timeout   time.Duration `split_words:"true" default:"10s"`
	UserAgent string        `split_words:"true" default:"Finch/1.0"`
}

// Client запрашивает /simple/price и разбирает ответ вида {"bitcoin":{"usd":<number>}}.
type Client struct {
	cfg      Config
	http     *http.Client
	asset    string
	currency string
	log      *slog.Logger
}

// New создаёт клиента. httpClient == nil — используется http.DefaultClient.
func New(cfg Config, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		cfg:      cfg,
		http:     httpClient,
		asset:    domain.AssetBitcoin,
		currency: domain.CurrencyUSD,
		log:      log,
	}
}

// CurrentPrice возвращает текущую цену актива в USD.
// Ошибки: *domain.RateLimitError (429), domain.ErrUpstreamUnavailable (сеть, таймаут, не-2xx),
// domain.ErrUnknownAsset (нет актива в ответе), domain.ErrInvalidUpstreamResponse (нет цены или не число).
func (c *Client) CurrentPrice(ctx context.Context) (float64, error) {
	start := time.Now()
	price, err := c.currentPrice(ctx)
	upstreamDuration.WithLabelValues(outcome(err)).Observe(time.Since(start).Seconds())
	return price, err
}

func (c *Client) currentPrice(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("ids", c.asset)
	q.Set("vs_currencies", c.currency)
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/simple/price?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %w", domain.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("upstream request failed", "error", err)
		return 0, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return 0, &domain.RateLimitError{RetryAfter: resp.Header.Get("Retry-After")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, fmt.Errorf("%w: read body: %w", domain.ErrUpstreamUnavailable, err)
	}
	return c.parse(body)
}

// parse достаёт цену из тела ответа.
func (c *Client) parse(body []byte) (float64, error) {
	if !gjson.ValidBytes(body) {
		return 0, fmt.Errorf("%w: body is not json", domain.ErrInvalidUpstreamResponse)
	}
	asset := gjson.GetBytes(body, c.asset)
	if !asset.Exists() {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownAsset, c.asset)
	}
	field := asset.Get(c.currency)

	var price float64
	switch field.Type {
	case gjson.Number:
		price = field.Float()
	case gjson.String:
		v, err := strconv.ParseFloat(field.Str, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s.%s is not numeric", domain.ErrInvalidUpstreamResponse, c.asset, c.currency)
		}
		price = v
	default:
		return 0, fmt.Errorf("%w: %s.%s missing or not numeric", domain.ErrInvalidUpstreamResponse, c.asset, c.currency)
	}

	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, fmt.Errorf("%w: non-positive price %v", domain.ErrInvalidUpstreamResponse, price)
	}
	return price, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return "rate_limited"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "unavailable"
	default:
		return "invalid"
	}
}
