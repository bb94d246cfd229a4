package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	apigrpc "finch/internal/api/grpc"
	apihttp "finch/internal/api/http"
	"finch/internal/infrastructure/click"
	"finch/internal/infrastructure/coingecko"
	"finch/internal/infrastructure/kafka"
	"finch/internal/infrastructure/mongo"
	"finch/internal/infrastructure/pg"
	"finch/internal/infrastructure/redis"
)

const AppName = "FINCH"

// Хранилища наблюдений, выбираются FINCH_STORAGE.
const (
	StoragePostgres = "pg"
	StorageMongo    = "mongo"
)

// PriceConfig — параметры сервиса цен. Переменные: FINCH_PRICE_CACHE_TTL, FINCH_PRICE_MAX_RANGE.
type PriceConfig struct {
	CacheTTL time.Duration `split_words:"true" default:"300s"`
	MaxRange time.Duration `split_words:"true" default:"2160h"`
}

// PollerConfig — периодическое обновление цены. Пустое расписание — поллер выключен.
type PollerConfig struct {
	Schedule string `split_words:"true" default:""`
}

// Config — конфиг приложения. Заполняется через envconfig с префиксом FINCH.
// Листовые поля размечены split_words, а не тегом envconfig: тег включает поиск переменной
// без префикса, и FINCH_DB_USER подхватил бы системный USER.
type Config struct {
	LogLevel   string               `split_words:"true" default:"info"`
	Server     apihttp.ServerConfig `envconfig:"SERVER"`
	Grpc       apigrpc.ServerConfig `envconfig:"GRPC"`
	Storage    string               `split_words:"true" default:"pg"`
	DB         pg.Config            `envconfig:"DB"`
	Mongo      mongo.Config         `envconfig:"MONGO"`
	Redis      redis.Config         `envconfig:"REDIS"`
	Price      PriceConfig          `envconfig:"PRICE"`
	CoinGecko  coingecko.Config     `envconfig:"COINGECKO"`
	RateLimit  int                  `split_words:"true" default:"60"`
	Kafka      kafka.Config         `envconfig:"KAFKA"`
	ClickHouse click.Config         `envconfig:"CLICKHOUSE"`
	Poller     PollerConfig         `envconfig:"POLLER"`
}

// Validate проверяет значения, которые envconfig не может проверить сам.
func (c Config) Validate() error {
	switch c.Storage {
	case StoragePostgres, StorageMongo:
	default:
		return fmt.Errorf("config: unknown storage %q (want %q or %q)", c.Storage, StoragePostgres, StorageMongo)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: rate limit must not be negative, got %d", c.RateLimit)
	}
	if c.Price.CacheTTL < 0 || c.Price.MaxRange < 0 {
		return fmt.Errorf("config: price durations must not be negative")
	}
	if c.CoinGecko.BaseURL == "" {
		return fmt.Errorf("config: coingecko base url is empty")
	}
	return nil
}

// LoadCfg загружает конфиг: подтягивает .env (godotenv), затем заполняет структуру из окружения (envconfig).
func LoadCfg() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("config: .env not found, using environment", "error", err)
	}
	return loadEnv()
}

func loadEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
