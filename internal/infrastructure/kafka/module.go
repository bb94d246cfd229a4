package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config — настройки Kafka. Переменные: FINCH_KAFKA_ENABLED, FINCH_KAFKA_BROKERS, FINCH_KAFKA_TOPIC, FINCH_KAFKA_GROUP_ID.
type Config struct {
	Enabled bool   `split_words:"true" default:"false"`
	Brokers string `split_words:"true" default:"localhost:9092"` // через запятую
	Topic   string `split_words:"true" default:"bitcoin-prices"`
	GroupID string `split_words:"true" default:"finch-analytics"`
}

func (c Config) brokers() []string {
	if c.Brokers == "" {
		return []string{"localhost:9092"}
	}
	parts := strings.Split(c.Brokers, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Client — фабрика продюсера и консьюмера. Подключение к брокеру происходит лениво.
type Client struct {
	cfg Config
}

// New создаёт клиента по конфигу.
func New(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Producer создаёт продюсера событий цены. После использования вызови Close().
func (c *Client) Producer() *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(c.cfg.brokers()...),
		Topic:        c.cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{w: w}
}

func (c *Client) reader() *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: c.cfg.brokers(),
		Topic:   c.cfg.Topic,
		GroupID: c.cfg.GroupID,
	})
}
