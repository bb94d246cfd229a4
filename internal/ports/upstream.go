package ports

//go:generate mockgen -source=upstream.go -destination=../mocks/upstream_mock.go -package=mocks

import "context"

// IPriceProvider — внешний источник текущей цены отслеживаемого актива.
type IPriceProvider interface {
	CurrentPrice(ctx context.Context) (float64, error)
}
