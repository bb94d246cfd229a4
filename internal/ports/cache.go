package ports

//go:generate mockgen -source=cache.go -destination=../mocks/cache_mock.go -package=mocks

import (
	"context"
	"time"
)

// ICache — key-value кэш со значениями-строками и необязательным TTL.
// Кэш не является источником истины: его недоступность влияет только на скорость.
type ICache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePattern удаляет все ключи по glob-шаблону и возвращает их число.
	DeletePattern(ctx context.Context, pattern string) (int, error)
	Ping(ctx context.Context) error
}

// IRateWindow — счётчик запросов клиента в фиксированном окне.
type IRateWindow interface {
	// Hit создаёт окно со счётчиком 1 и TTL window либо увеличивает счётчик существующего.
	// Возвращает значение счётчика после увеличения и время до сброса окна.
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetIn time.Duration, err error)
}
