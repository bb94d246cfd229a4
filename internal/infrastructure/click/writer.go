package click

import (
	"context"
	"fmt"
	"time"

	"finch/internal/domain"
	"finch/internal/ports"
)

var _ ports.IPriceAnalytics = (*PriceWriter)(nil)

const analyticsTable = "bitcoin_prices_analytics"

// PriceWriter пишет наблюдения цены в ClickHouse для аналитики (агрегации по времени и источнику).
type PriceWriter struct {
	db    *Client
	table string
}

// NewPriceWriter создаёт писатель в таблицу <database>.bitcoin_prices_analytics.
func NewPriceWriter(db *Client) *PriceWriter {
	return &PriceWriter{db: db, table: db.database + "." + analyticsTable}
}

// EnsureTable создаёт таблицу, если её нет. Вызывается один раз при старте.
func (w *PriceWriter) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id Int64,
			price_usd Float64,
			source LowCardinality(String),
			timestamp DateTime64(6, 'UTC'),
			created_at DateTime64(6, 'UTC')
		) ENGINE = ReplacingMergeTree()
		PARTITION BY toYYYYMM(timestamp)
		ORDER BY (timestamp, id)`,
		w.table,
	)
	if _, err := w.db.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create analytics table: %w", err)
	}
	return nil
}

// WritePrice пишет одно наблюдение. Повторная доставка того же события схлопывается движком по (timestamp, id).
func (w *PriceWriter) WritePrice(ctx context.Context, p domain.PriceObservation) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (id, price_usd, source, timestamp, created_at) VALUES (?, ?, ?, ?, ?)",
		w.table,
	)
	_, err := w.db.db.ExecContext(ctx, query,
		p.ID, p.PriceUSD, p.Source, p.Timestamp.UTC(), p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert price: %w", err)
	}
	return nil
}

// CountSince — число наблюдений начиная с момента since. Используется проверками и отчётами.
func (w *PriceWriter) CountSince(ctx context.Context, since time.Time) (uint64, error) {
	var n uint64
	query := fmt.Sprintf("SELECT count() FROM %s FINAL WHERE timestamp >= ?", w.table)
	if err := w.db.db.QueryRowContext(ctx, query, since.UTC()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count prices: %w", err)
	}
	return n, nil
}

// Ping проверяет доступность ClickHouse (для health-check).
func (w *PriceWriter) Ping(ctx context.Context) error {
	return w.db.Ping(ctx)
}
