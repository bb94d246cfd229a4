package ports

//go:generate mockgen -source=analytics.go -destination=../mocks/analytics_mock.go -package=mocks

import (
	"context"

	"finch/internal/domain"
)

// IPriceAnalytics — запись наблюдений в хранилище для аналитики (ClickHouse).
type IPriceAnalytics interface {
	WritePrice(ctx context.Context, p domain.PriceObservation) error
}
