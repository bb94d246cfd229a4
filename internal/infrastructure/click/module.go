package click

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// Config — настройки подключения к ClickHouse. Переменные: FINCH_CLICKHOUSE_ENABLED, HOST, PORT, DATABASE, USERNAME, PASSWORD.
type Config struct {
	Enabled  bool   `split_words:"true" default:"false"`
	Host     string `split_words:"true" default:"localhost"`
	Port     string `split_words:"true" default:"9000"`
	Database string `split_words:"true" default:"default"`
	Username string `split_words:"true" default:"default"`
	Password string `split_words:"true" default:""`
}

// Addr возвращает "host:port" нативного протокола.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Client — обёртка над sql.DB с драйвером clickhouse.
type Client struct {
	db       *sql.DB
	database string
}

// New подключается к ClickHouse и проверяет соединение. После использования вызови Close().
func New(ctx context.Context, cfg Config) (*Client, error) {
	db := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{cfg.Addr()},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("clickhouse ping: %w", err)
	}
	return &Client{db: db, database: cfg.Database}, nil
}

// Close закрывает соединение.
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping проверяет соединение.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
