package domain

import "time"

// Константы отслеживаемого актива и источника котировок.
const (
	AssetBitcoin    = "bitcoin"
	CurrencyUSD     = "usd"
	SourceCoinGecko = "coingecko"
)

// PriceObservation — одно наблюдение цены, записанное путём получения текущей цены.
// Timestamp хранится в UTC без зоны (в БД колонка TIMESTAMP без time zone).
type PriceObservation struct {
	ID        int64     `json:"id"`
	PriceUSD  float64   `json:"price_usd"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPriceObservation создаёт наблюдение на момент now (UTC, точность до микросекунд, как в БД).
func NewPriceObservation(price float64, source string, now time.Time) PriceObservation {
	now = NaiveUTC(now).Truncate(time.Microsecond)
	return PriceObservation{
		PriceUSD:  price,
		Timestamp: now,
		Source:    source,
		CreatedAt: now,
	}
}

// NaiveUTC переводит момент в UTC. Зона отбрасывается: хранилище работает с UTC без зоны.
func NaiveUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), u.Nanosecond(), time.UTC)
}
