package pg

import (
	"context"
	"log/slog"
	"time"

	"finch/internal/domain"
	"finch/internal/ports"
)

var _ ports.IPriceRepository = (*PriceRepo)(nil)

const (
	insertPrice = `INSERT INTO bitcoin_prices (price_usd, "timestamp", source, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`

	selectPriceRange = `SELECT id, price_usd, "timestamp", source, created_at
		FROM bitcoin_prices
		WHERE "timestamp" >= $1 AND "timestamp" <= $2
		ORDER BY "timestamp" DESC`
)

// priceRow — строка таблицы bitcoin_prices.
type priceRow struct {
	ID        int64     `db:"id"`
	PriceUSD  float64   `db:"price_usd"`
	Timestamp time.Time `db:"timestamp"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
}

func (r priceRow) toDomain() domain.PriceObservation {
	return domain.PriceObservation{
		ID:        r.ID,
		PriceUSD:  r.PriceUSD,
		Timestamp: domain.NaiveUTC(r.Timestamp),
		Source:    r.Source,
		CreatedAt: domain.NaiveUTC(r.CreatedAt),
	}
}

// PriceRepo реализует ports.IPriceRepository для PostgreSQL.
type PriceRepo struct {
	db  *DB
	log *slog.Logger
}

// NewPriceRepo возвращает репозиторий цен.
func NewPriceRepo(db *DB, log *slog.Logger) *PriceRepo {
	return &PriceRepo{db: db, log: log}
}

// SavePrice вставляет наблюдение в транзакции; при ошибке транзакция откатывается.
// Время передаётся в UTC: колонка без зоны, смещение из параметра Postgres бы отбросил.
func (r *PriceRepo) SavePrice(ctx context.Context, p domain.PriceObservation) (domain.PriceObservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.log.Debug("SavePrice begin failed", "error", err)
		return p, classify("begin", err)
	}

	var id int64
	err = tx.QueryRowxContext(ctx, insertPrice,
		p.PriceUSD, domain.NaiveUTC(p.Timestamp), p.Source, domain.NaiveUTC(p.CreatedAt)).Scan(&id)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.log.Debug("SavePrice rollback failed", "error", rbErr)
		}
		r.log.Debug("SavePrice failed", "error", err)
		return p, classify("insert price", err)
	}
	if err := tx.Commit(); err != nil {
		r.log.Debug("SavePrice commit failed", "error", err)
		return p, classify("commit", err)
	}

	p.ID = id
	return p, nil
}

// GetPrices возвращает наблюдения в диапазоне [start, end] включительно, новые сначала.
func (r *PriceRepo) GetPrices(ctx context.Context, start, end time.Time) ([]domain.PriceObservation, error) {
	var rows []priceRow
	if err := r.db.SelectContext(ctx, &rows, selectPriceRange, domain.NaiveUTC(start), domain.NaiveUTC(end)); err != nil {
		r.log.Debug("GetPrices failed", "error", err)
		return nil, classify("select prices", err)
	}
	list := make([]domain.PriceObservation, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toDomain())
	}
	return list, nil
}

// Ping проверяет доступность БД (readiness).
func (r *PriceRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
