package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"finch/internal/domain"
	"finch/internal/ports"
)

const (
	retryBase = 500 * time.Millisecond
	retryMax  = 30 * time.Second
)

// Consumer читает события цены из топика и передаёт их в use case.
type Consumer struct {
	r         *kafka.Reader
	uc        ports.IPriceUseCase
	log       *slog.Logger
	retryBase time.Duration
}

// NewConsumer создаёт консьюмера в consumer group из конфига. После использования вызови Close().
func NewConsumer(cfg Config, uc ports.IPriceUseCase, log *slog.Logger) *Consumer {
	return &Consumer{r: New(cfg).reader(), uc: uc, log: log, retryBase: retryBase}
}

// Run читает сообщения до отмены ctx или ошибки чтения. Офсет коммитится только после обработки:
// битые сообщения пропускаются, ошибка обработки повторяется с backoff на том же сообщении.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped", "error", err)
			return err
		}

		if err := c.process(ctx, msg); err != nil {
			return err
		}

		if err := c.r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped (commit)", "error", err)
			return err
		}
	}
}

// process повторяет обработку сообщения, пока она не пройдёт или не отменят ctx.
// Следующее сообщение не читается: коммит его офсета подтвердил бы и это.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) error {
	backoff := c.retryBase
	for {
		err := c.handle(ctx, msg)
		if err == nil {
			return nil
		}
		c.log.Warn("kafka handle error, retrying", "error", err, "offset", msg.Offset, "retry_in", backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, retryMax)
	}
}

// handle декодирует событие и вызывает use case. Битое сообщение не ошибка: его пропускаем.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	var p domain.PriceObservation
	if err := json.Unmarshal(msg.Value, &p); err != nil {
		c.log.Warn("kafka unmarshal error, skip", "error", err, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
		return nil
	}
	return c.uc.HandlePriceEvent(ctx, p)
}

// Close закрывает консьюмера.
func (c *Consumer) Close() error {
	return c.r.Close()
}
