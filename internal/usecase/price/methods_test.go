package price

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"finch/internal/domain"
	"finch/internal/mocks"
	"finch/internal/pkg/cacheaside"
)

// newTestLogger создаёт логгер для тестов (выводит только ошибки, чтобы не засорять вывод).
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var fixedNow = time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)

type deps struct {
	cache     *mocks.MockICache
	repo      *mocks.MockIPriceRepository
	provider  *mocks.MockIPriceProvider
	broker    *mocks.MockIProducer
	analytics *mocks.MockIPriceAnalytics
}

func newUseCase(t *testing.T) (*UseCase, deps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := deps{
		cache:     mocks.NewMockICache(ctrl),
		repo:      mocks.NewMockIPriceRepository(ctrl),
		provider:  mocks.NewMockIPriceProvider(ctrl),
		broker:    mocks.NewMockIProducer(ctrl),
		analytics: mocks.NewMockIPriceAnalytics(ctrl),
	}
	log := newTestLogger()
	uc := New(d.repo, d.provider, cacheaside.New(d.cache, log), d.broker, d.analytics,
		Config{CacheTTL: 300 * time.Second, MaxRange: 90 * 24 * time.Hour, Storage: "pg"}, log)
	uc.now = func() time.Time { return fixedNow }
	return uc, d
}

func priceKey(uc *UseCase) string {
	opts, args := uc.currentPriceCache()
	return opts.Key(args)
}

// Промах кэша: апстрим → одна запись в хранилище → кэш → брокер.
func TestCurrentPrice_CacheMiss(t *testing.T) {
	uc, d := newUseCase(t)
	key := priceKey(uc)

	var saved domain.PriceObservation
	gomock.InOrder(
		d.cache.EXPECT().Ping(gomock.Any()).Return(nil),
		d.cache.EXPECT().Get(gomock.Any(), key).Return("", false, nil),
		d.provider.EXPECT().CurrentPrice(gomock.Any()).Return(65000.5, nil),
		d.repo.EXPECT().SavePrice(gomock.Any(), gomock.Any()).Times(1).
			DoAndReturn(func(_ context.Context, p domain.PriceObservation) (domain.PriceObservation, error) {
				saved = p
				p.ID = 7
				return p, nil
			}),
		d.broker.EXPECT().Send(gomock.Any(), []byte("bitcoin"), gomock.Any()).Return(nil),
		d.cache.EXPECT().Set(gomock.Any(), key, "65000.5", 300*time.Second).Return(nil),
	)

	price, err := uc.CurrentPrice(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 65000.5, price)
	assert.Equal(t, 65000.5, saved.PriceUSD)
	assert.Equal(t, domain.SourceCoinGecko, saved.Source)
	assert.Equal(t, fixedNow, saved.Timestamp)
}

// Хит: ни апстрим, ни хранилище не вызываются.
func TestCurrentPrice_CacheHit(t *testing.T) {
	uc, d := newUseCase(t)

	d.cache.EXPECT().Ping(gomock.Any()).Return(nil)
	d.cache.EXPECT().Get(gomock.Any(), priceKey(uc)).Return("64000", true, nil)

	price, err := uc.CurrentPrice(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 64000.0, price)
}

// Два вызова подряд в пределах TTL: апстрим вызывается один раз, значения совпадают.
func TestCurrentPrice_TwoCallsWithinTTL(t *testing.T) {
	uc, d := newUseCase(t)

	store := map[string]string{}
	d.cache.EXPECT().Ping(gomock.Any()).Return(nil).Times(2)
	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, key string) (string, bool, error) {
			v, ok := store[key]
			return v, ok, nil
		})
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(1).
		DoAndReturn(func(_ context.Context, key, value string, _ time.Duration) error {
			store[key] = value
			return nil
		})
	d.provider.EXPECT().CurrentPrice(gomock.Any()).Return(61000.25, nil).Times(1)
	d.repo.EXPECT().SavePrice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p domain.PriceObservation) (domain.PriceObservation, error) {
			return p, nil
		}).Times(1)
	d.broker.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	first, err := uc.CurrentPrice(context.Background())
	require.NoError(t, err)
	second, err := uc.CurrentPrice(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// Ошибка записи: цена не возвращается, в кэш и брокер ничего не уходит.
func TestCurrentPrice_StorageFailure(t *testing.T) {
	uc, d := newUseCase(t)

	d.cache.EXPECT().Ping(gomock.Any()).Return(nil)
	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false, nil)
	d.provider.EXPECT().CurrentPrice(gomock.Any()).Return(65000.0, nil)
	d.repo.EXPECT().SavePrice(gomock.Any(), gomock.Any()).Return(domain.PriceObservation{}, errors.New("boom"))

	price, err := uc.CurrentPrice(context.Background())

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Zero(t, price)
}

func TestCurrentPrice_StorageUnavailablePassesThrough(t *testing.T) {
	uc, d := newUseCase(t)

	d.cache.EXPECT().Ping(gomock.Any()).Return(nil)
	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false, nil)
	d.provider.EXPECT().CurrentPrice(gomock.Any()).Return(65000.0, nil)
	d.repo.EXPECT().SavePrice(gomock.Any(), gomock.Any()).
		Return(domain.PriceObservation{}, domain.ErrStorageUnavailable)

	_, err := uc.CurrentPrice(context.Background())

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, domain.ErrStorage)
}

// 429 от апстрима доходит до вызывающего с подсказкой Retry-After, записи нет.
func TestCurrentPrice_UpstreamRateLimited(t *testing.T) {
	uc, d := newUseCase(t)

	d.cache.EXPECT().Ping(gomock.Any()).Return(nil)
	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false, nil)
	d.provider.EXPECT().CurrentPrice(gomock.Any()).Return(0.0, &domain.RateLimitError{RetryAfter: "30"})

	_, err := uc.CurrentPrice(context.Background())

	require.ErrorIs(t, err, domain.ErrRateLimitExceeded)
	assert.Equal(t, "30", domain.RetryAfterHint(err))
}

// Кэш недоступен: работаем напрямую, без ошибки.
func TestCurrentPrice_CacheDownBypasses(t *testing.T) {
	uc, d := newUseCase(t)

	d.cache.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	d.provider.EXPECT().CurrentPrice(gomock.Any()).Return(60000.0, nil)
	d.repo.EXPECT().SavePrice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p domain.PriceObservation) (domain.PriceObservation, error) {
			return p, nil
		})
	d.broker.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	price, err := uc.CurrentPrice(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 60000.0, price)
}

// Ошибка брокера не ломает получение цены.
func TestCurrentPrice_BrokerFailureIgnored(t *testing.T) {
	uc, d := newUseCase(t)

	d.cache.EXPECT().Ping(gomock.Any()).Return(nil)
	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false, nil)
	d.provider.EXPECT().CurrentPrice(gomock.Any()).Return(60000.0, nil)
	d.repo.EXPECT().SavePrice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p domain.PriceObservation) (domain.PriceObservation, error) {
			return p, nil
		})
	d.broker.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("kafka down"))
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any(), "60000", gomock.Any()).Return(nil)

	price, err := uc.CurrentPrice(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 60000.0, price)
}

func TestPriceHistory_PassesNormalizedBounds(t *testing.T) {
	uc, d := newUseCase(t)

	msk := time.FixedZone("MSK", 3*3600)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, msk)
	end := time.Date(2024, 1, 2, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))
	wantStart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 1, 2, 17, 0, 0, 0, time.UTC)

	rows := []domain.PriceObservation{
		{ID: 2, PriceUSD: 2, Timestamp: wantEnd, Source: domain.SourceCoinGecko},
		{ID: 1, PriceUSD: 1, Timestamp: wantStart, Source: domain.SourceCoinGecko},
	}
	d.repo.EXPECT().GetPrices(gomock.Any(), wantStart, wantEnd).Return(rows, nil)

	got, err := uc.PriceHistory(context.Background(), start, end)

	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestPriceHistory_TimezoneEquivalence(t *testing.T) {
	uc, d := newUseCase(t)

	utcStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	utcEnd := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*3600)

	d.repo.EXPECT().GetPrices(gomock.Any(), utcStart, utcEnd).Return(nil, nil).Times(2)

	_, err := uc.PriceHistory(context.Background(), utcStart, utcEnd)
	require.NoError(t, err)
	_, err = uc.PriceHistory(context.Background(), utcStart.In(tokyo), utcEnd.In(tokyo))
	require.NoError(t, err)
}

// Перевёрнутый диапазон: ошибка валидации, хранилище не вызывается.
func TestPriceHistory_Validation(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		start, end time.Time
	}{
		{name: "end раньше start", start: base, end: base.Add(-time.Second)},
		{name: "диапазон больше 90 дней", start: base, end: base.Add(91 * 24 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newUseCase(t)

			got, err := uc.PriceHistory(context.Background(), tt.start, tt.end)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Nil(t, got)
		})
	}
}

func TestPriceHistory_EqualBoundsAllowed(t *testing.T) {
	uc, d := newUseCase(t)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	d.repo.EXPECT().GetPrices(gomock.Any(), at, at).Return(nil, nil)

	got, err := uc.PriceHistory(context.Background(), at, at)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPriceHistory_StorageErrors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "соединение", repoErr: domain.ErrStorageUnavailable, wantErr: domain.ErrStorageUnavailable},
		{name: "прочее", repoErr: errors.New("syntax error"), wantErr: domain.ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, d := newUseCase(t)
			d.repo.EXPECT().GetPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.repoErr)

			_, err := uc.PriceHistory(context.Background(), fixedNow.Add(-time.Hour), fixedNow)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInvalidateCache(t *testing.T) {
	uc, d := newUseCase(t)

	d.cache.EXPECT().Ping(gomock.Any()).Return(nil)
	d.cache.EXPECT().DeletePattern(gomock.Any(), "btc_price:*").Return(3, nil)

	assert.NoError(t, uc.InvalidateCache(context.Background()))
}

func TestInvalidateCache_CacheDown(t *testing.T) {
	uc, d := newUseCase(t)

	d.cache.EXPECT().Ping(gomock.Any()).Return(errors.New("down"))

	assert.NoError(t, uc.InvalidateCache(context.Background()))
}

func TestHandlePriceEvent(t *testing.T) {
	uc, d := newUseCase(t)
	obs := domain.PriceObservation{ID: 1, PriceUSD: 1000, Timestamp: fixedNow, Source: domain.SourceCoinGecko}

	d.analytics.EXPECT().WritePrice(gomock.Any(), obs).Return(nil)
	require.NoError(t, uc.HandlePriceEvent(context.Background(), obs))

	d.analytics.EXPECT().WritePrice(gomock.Any(), obs).Return(errors.New("click down"))
	assert.Error(t, uc.HandlePriceEvent(context.Background(), obs))
}
