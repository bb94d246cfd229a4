package price

import (
	"log/slog"
	"time"

	"finch/internal/pkg/cacheaside"
	"finch/internal/ports"
)

var _ ports.IPriceUseCase = (*UseCase)(nil)

const (
	cacheKeyPrefix   = "btc_price"
	currentPriceName = "get_current_price"
)

// Config — параметры сервиса цен.
type Config struct {
	CacheTTL time.Duration // TTL закэшированной текущей цены
	MaxRange time.Duration // максимальная длина диапазона истории; 0 — без ограничения
	Storage  string        // тег хранилища, в ключ кэша не входит
}

// UseCase — бизнес-логика сервиса цен.
type UseCase struct {
	repo      ports.IPriceRepository
	provider  ports.IPriceProvider
	cacher    *cacheaside.Cacher
	broker    ports.IProducer
	analytics ports.IPriceAnalytics
	cfg       Config
	log       *slog.Logger
	now       func() time.Time
}

// New создаёт юзкейс. broker и analytics могут быть nil: публикация и аналитика тогда пропускаются.
func New(
	repo ports.IPriceRepository,
	provider ports.IPriceProvider,
	cacher *cacheaside.Cacher,
	broker ports.IProducer,
	analytics ports.IPriceAnalytics,
	cfg Config,
	log *slog.Logger,
) *UseCase {
	if log == nil {
		log = slog.Default()
	}
	return &UseCase{
		repo:      repo,
		provider:  provider,
		cacher:    cacher,
		broker:    broker,
		analytics: analytics,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// currentPriceCache — описание кэшируемой операции текущей цены. Хэндл хранилища в ключ не входит.
func (u *UseCase) currentPriceCache() (cacheaside.Options, []cacheaside.Arg) {
	opts := cacheaside.Options{
		Name:      currentPriceName,
		TTL:       u.cfg.CacheTTL,
		KeyPrefix: cacheKeyPrefix,
		Exclude:   []string{"db"},
	}
	return opts, []cacheaside.Arg{{Name: "db", Value: u.cfg.Storage}}
}
