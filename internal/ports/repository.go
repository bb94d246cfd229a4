package ports

//go:generate mockgen -source=repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"finch/internal/domain"
)

// IPriceRepository — контракт хранилища наблюдений цены (только добавление и выборка по диапазону).
type IPriceRepository interface {
	// SavePrice записывает наблюдение в транзакции и возвращает его с присвоенным ID.
	SavePrice(ctx context.Context, p domain.PriceObservation) (domain.PriceObservation, error)
	// GetPrices возвращает наблюдения с start <= timestamp <= end, новые сначала.
	GetPrices(ctx context.Context, start, end time.Time) ([]domain.PriceObservation, error)
	Ping(ctx context.Context) error
}

// IPinger — зависимость, доступность которой проверяется health-чеками.
type IPinger interface {
	Ping(ctx context.Context) error
}
