package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Config — настройки подключения к PostgreSQL. Переменные: FINCH_DB_HOST, FINCH_DB_PORT, FINCH_DB_NAME, FINCH_DB_SSL_MODE и т.д.
type Config struct {
	Host         string        `split_words:"true" default:"localhost"`
	Port         string        `split_words:"true" default:"5432"`
	User         string        `split_words:"true" default:"postgres"`
	Password     string        `split_words:"true" default:"postgres"`
	Name         string        `split_words:"true" default:"finch"`
	SSLMode      string        `split_words:"true" default:"disable"`
	MaxOpenConns int           `split_words:"true" default:"10"`
	ConnLifetime time.Duration `split_words:"true" default:"30m"`
}

// DSN возвращает строку подключения для lib/pq.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// DB обёртка над пулом соединений sqlx.
type DB struct {
	*sqlx.DB
}

// New подключается к PostgreSQL по конфигу и проверяет пингом.
func New(cfg *Config) (*DB, error) {
	conn, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("pg open: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	conn.SetConnMaxLifetime(cfg.ConnLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}
	return &DB{conn}, nil
}

// Close закрывает пул.
func (db *DB) Close() error {
	return db.DB.Close()
}

// Ping проверяет соединение с БД (для readiness).
func (db *DB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}
