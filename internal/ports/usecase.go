package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import (
	"context"
	"time"

	"finch/internal/domain"
)

// IPriceUseCase — бизнес-логика сервиса цен.
type IPriceUseCase interface {
	CurrentPrice(ctx context.Context) (float64, error)
	PriceHistory(ctx context.Context, start, end time.Time) ([]domain.PriceObservation, error)
	InvalidateCache(ctx context.Context) error
	HandlePriceEvent(ctx context.Context, p domain.PriceObservation) error
}
