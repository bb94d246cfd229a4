package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"finch/internal/ports"
)

var (
	_ ports.IProducer = (*Producer)(nil)
	_ ports.IProducer = NoopProducer{}
)

// Producer — обёртка над kafka.Writer. Ключ сообщения — актив, чтобы события шли в одну партицию по порядку.
type Producer struct {
	w *kafka.Writer
}

// NewProducer создаёт продюсера по конфигу. После использования вызови Close().
func NewProducer(cfg Config) *Producer {
	return New(cfg).Producer()
}

// Send отправляет одно сообщение.
func (p *Producer) Send(ctx context.Context, key, value []byte) error {
	if err := p.w.WriteMessages(ctx, kafka.Message{Key: key, Value: value}); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

// Close закрывает продюсера.
func (p *Producer) Close() error {
	return p.w.Close()
}

// NoopProducer используется, когда Kafka выключена: сообщения отбрасываются.
type NoopProducer struct{}

// Send ничего не делает.
func (NoopProducer) Send(context.Context, []byte, []byte) error { return nil }
