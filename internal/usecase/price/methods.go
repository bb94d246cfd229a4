package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"finch/internal/domain"
	"finch/internal/pkg/cacheaside"
)

// CurrentPrice — текущая цена через кэш. При промахе: апстрим, запись в хранилище, событие в брокер.
func (u *UseCase) CurrentPrice(ctx context.Context) (float64, error) {
	opts, args := u.currentPriceCache()
	return cacheaside.Do(ctx, u.cacher, opts, args, u.fetchAndStore)
}

// fetchAndStore запрашивает цену и сохраняет наблюдение. Без успешной записи цена не возвращается.
func (u *UseCase) fetchAndStore(ctx context.Context) (float64, error) {
	price, err := u.provider.CurrentPrice(ctx)
	if err != nil {
		u.log.Warn("upstream price fetch failed", "error", err)
		return 0, err
	}

	obs := domain.NewPriceObservation(price, domain.SourceCoinGecko, u.now())
	saved, err := u.repo.SavePrice(ctx, obs)
	if err != nil {
		if !errors.Is(err, domain.ErrStorage) && !errors.Is(err, domain.ErrStorageUnavailable) {
			err = fmt.Errorf("%w: save price: %w", domain.ErrStorage, err)
		}
		return 0, err
	}
	u.log.Info("price saved", "id", saved.ID, "price_usd", saved.PriceUSD)

	u.publish(ctx, saved)
	return saved.PriceUSD, nil
}

// publish отправляет наблюдение в брокер. Ошибка только логируется.
func (u *UseCase) publish(ctx context.Context, obs domain.PriceObservation) {
	if u.broker == nil {
		return
	}
	value, err := json.Marshal(obs)
	if err != nil {
		u.log.Warn("price event encode", "error", err)
		return
	}
	if err := u.broker.Send(ctx, []byte(domain.AssetBitcoin), value); err != nil {
		u.log.Warn("broker send", "id", obs.ID, "error", err)
		return
	}
	u.log.Debug("price published", "id", obs.ID)
}

// PriceHistory — наблюдения с start <= timestamp <= end, новые сначала. Не кэшируется.
// Границы переводятся в UTC без зоны независимо друг от друга.
func (u *UseCase) PriceHistory(ctx context.Context, start, end time.Time) ([]domain.PriceObservation, error) {
	start, end = domain.NaiveUTC(start), domain.NaiveUTC(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_time must not be before start_time", domain.ErrValidation)
	}
	if u.cfg.MaxRange > 0 && end.Sub(start) > u.cfg.MaxRange {
		return nil, fmt.Errorf("%w: time range must not exceed %s", domain.ErrValidation, u.cfg.MaxRange)
	}

	prices, err := u.repo.GetPrices(ctx, start, end)
	if err != nil {
		if !errors.Is(err, domain.ErrStorage) && !errors.Is(err, domain.ErrStorageUnavailable) {
			err = fmt.Errorf("%w: get prices: %w", domain.ErrStorage, err)
		}
		return nil, err
	}
	if prices == nil {
		prices = []domain.PriceObservation{}
	}
	return prices, nil
}

// InvalidateCache удаляет закэшированные значения цены. Недоступный кэш — не ошибка.
func (u *UseCase) InvalidateCache(ctx context.Context) error {
	n := u.cacher.Invalidate(ctx, cacheKeyPrefix+":*")
	u.log.Debug("price cache invalidated", "keys", n)
	return nil
}

// HandlePriceEvent вызывается консьюмером при получении события из топика цен.
func (u *UseCase) HandlePriceEvent(ctx context.Context, p domain.PriceObservation) error {
	if u.analytics == nil {
		return nil
	}
	if err := u.analytics.WritePrice(ctx, p); err != nil {
		u.log.Warn("analytics write", "id", p.ID, "error", err)
		return err
	}
	u.log.Info("price stored to click", "id", p.ID, "price_usd", p.PriceUSD)
	return nil
}
