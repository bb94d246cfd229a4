package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finch/internal/ports"
)

var _ ports.IRateWindow = (*Window)(nil)

// Window — счётчик запросов в фиксированном окне поверх Redis (SETNX + INCR + TTL).
type Window struct {
	cli *Client
	log *slog.Logger
}

// NewWindow возвращает счётчик окон.
func NewWindow(cli *Client, log *slog.Logger) *Window {
	return &Window{cli: cli, log: log}
}

// Hit: первое обращение в окне создаёт ключ со значением 1 и TTL window, последующие увеличивают счётчик.
func (w *Window) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	created, err := w.cli.SetNX(ctx, key, 1, window).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("rate window create: %w", err)
	}
	if created {
		return 1, window, nil
	}

	pipe := w.cli.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("rate window incr: %w", err)
	}

	resetIn := ttl.Val()
	if resetIn < 0 {
		// Ключ истёк между SETNX и INCR и пересоздан без TTL: вешаем окно заново.
		if err := w.cli.Expire(ctx, key, window).Err(); err != nil {
			w.log.Debug("rate window expire failed", "key", key, "error", err)
		}
		resetIn = window
	}
	return incr.Val(), resetIn, nil
}
