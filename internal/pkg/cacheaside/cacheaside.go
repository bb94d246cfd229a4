// Package cacheaside — обёртка cache-aside над произвольной операцией: ключ из имени и аргументов,
// чтение из кэша, при промахе вызов операции и запись результата с TTL.
package cacheaside

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"finch/internal/ports"
)

const (
	healthTimeout = time.Second
	writeTimeout  = 2 * time.Second
)

var cacheOps = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_aside_operations_total",
		Help: "Cache-aside outcomes by operation: hit, miss, bypass, set_error",
	},
	[]string{"operation", "outcome"},
)

// Options — описание кэшируемой операции.
type Options struct {
	Name      string        // стабильное имя операции
	TTL       time.Duration // 0 — без срока
	KeyPrefix string        // необязательный префикс, например "btc_price"
	Exclude   []string      // имена аргументов, не влияющих на результат (хэндл БД и т.п.)
}

// Key возвращает ключ для набора аргументов с учётом префикса.
func (o Options) Key(args []Arg) string {
	key := Key(o.Name, args, o.Exclude)
	if o.KeyPrefix != "" {
		return o.KeyPrefix + ":" + key
	}
	return key
}

// Cacher выполняет операции через кэш. Кэш не является источником истины:
// при его недоступности операция выполняется напрямую без ошибки.
type Cacher struct {
	cache ports.ICache
	log   *slog.Logger
}

// New создаёт Cacher поверх key-value кэша.
func New(cache ports.ICache, log *slog.Logger) *Cacher {
	if log == nil {
		log = slog.Default()
	}
	return &Cacher{cache: cache, log: log}
}

// Do — cache-aside для fn. Хит возвращается без вызова fn. При промахе результат fn
// кэшируется; ошибка fn не кэшируется и возвращается как есть. Ошибка записи в кэш только логируется.
func Do[T any](ctx context.Context, c *Cacher, opts Options, args []Arg, fn func(context.Context) (T, error)) (T, error) {
	if c == nil || c.cache == nil || !c.healthy(ctx) {
		cacheOps.WithLabelValues(opts.Name, "bypass").Inc()
		return fn(ctx)
	}

	key := opts.Key(args)
	raw, found, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.log.Warn("cache get failed", "key", key, "error", err)
	case found:
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			cacheOps.WithLabelValues(opts.Name, "hit").Inc()
			return v, nil
		}
		c.log.Warn("cache value decode failed", "key", key)
	}
	cacheOps.WithLabelValues(opts.Name, "miss").Inc()

	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	c.store(ctx, opts.Name, key, v, opts.TTL)
	return v, nil
}

// Invalidate удаляет все ключи по glob-шаблону. Недоступный кэш — не ошибка, возвращается 0.
func (c *Cacher) Invalidate(ctx context.Context, pattern string) int {
	if c == nil || c.cache == nil || !c.healthy(ctx) {
		return 0
	}
	n, err := c.cache.DeletePattern(ctx, pattern)
	if err != nil {
		c.log.Warn("cache invalidate failed", "pattern", pattern, "error", err)
		return 0
	}
	c.log.Debug("cache invalidated", "pattern", pattern, "keys", n)
	return n
}

func (c *Cacher) healthy(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := c.cache.Ping(pingCtx); err != nil {
		c.log.Warn("cache unavailable, bypassing", "error", err)
		return false
	}
	return true
}

// store пишет значение, не завися от отмены запроса клиента.
func (c *Cacher) store(ctx context.Context, name, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		cacheOps.WithLabelValues(name, "set_error").Inc()
		c.log.Warn("cache value encode failed", "key", key, "error", err)
		return
	}
	setCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := c.cache.Set(setCtx, key, string(data), ttl); err != nil {
		cacheOps.WithLabelValues(name, "set_error").Inc()
		c.log.Warn("cache set failed", "key", key, "error", err)
	}
}
