package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"finch/internal/ports"
)

var _ ports.ICache = (*Cache)(nil)

const scanBatch = 100

// Cache реализует ports.ICache через Redis. Значения хранятся строками.
type Cache struct {
	cli *Client
	log *slog.Logger
}

// NewCache возвращает кэш, реализующий ports.ICache.
func NewCache(cli *Client, log *slog.Logger) *Cache {
	return &Cache{cli: cli, log: log}
}

// Get возвращает значение по ключу. Если ключа нет — found == false.
func (c *Cache) Get(ctx context.Context, key string) (value string, found bool, err error) {
	s, err := c.cli.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) { // ключа нет
			return "", false, nil
		}
		c.log.Debug("cache get failed", "key", key, "error", err)
		return "", false, err
	}
	return s, true, nil
}

// Set сохраняет значение по ключу. ttl == 0 — без срока жизни.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.cli.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Debug("cache set failed", "key", key, "error", err)
		return err
	}
	return nil
}

// Delete удаляет ключ. Отсутствие ключа — не ошибка.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.cli.Del(ctx, key).Err()
}

// DeletePattern обходит ключи через SCAN (не блокирует Redis, в отличие от KEYS) и удаляет совпавшие.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := c.cli.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			c.log.Debug("cache scan failed", "pattern", pattern, "error", err)
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := c.cli.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

// Ping проверяет соединение (для health-check и обхода кэша).
func (c *Cache) Ping(ctx context.Context) error {
	return c.cli.Ping(ctx).Err()
}
