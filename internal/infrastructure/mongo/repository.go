package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"finch/internal/domain"
	"finch/internal/ports"
)

var _ ports.IPriceRepository = (*PriceRepo)(nil)

// priceDoc — документ коллекции bitcoin_prices. _id — последовательный номер из коллекции counters.
type priceDoc struct {
	ID        int64     `bson:"_id"`
	PriceUSD  float64   `bson:"price_usd"`
	Timestamp time.Time `bson:"timestamp"`
	Source    string    `bson:"source"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d priceDoc) toDomain() domain.PriceObservation {
	return domain.PriceObservation{
		ID:        d.ID,
		PriceUSD:  d.PriceUSD,
		Timestamp: domain.NaiveUTC(d.Timestamp),
		Source:    d.Source,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// newPriceDoc приводит время к точности BSON (миллисекунды), чтобы возвращённое наблюдение
// совпадало с сохранённым документом.
func newPriceDoc(id int64, p domain.PriceObservation) priceDoc {
	return priceDoc{
		ID:        id,
		PriceUSD:  p.PriceUSD,
		Timestamp: domain.NaiveUTC(p.Timestamp).Truncate(time.Millisecond),
		Source:    p.Source,
		CreatedAt: p.CreatedAt.UTC().Truncate(time.Millisecond),
	}
}

// PriceRepo реализует ports.IPriceRepository для MongoDB. Время хранится с точностью до миллисекунд.
type PriceRepo struct {
	client *Client
	log    *slog.Logger
}

// NewPriceRepo возвращает репозиторий наблюдений.
func NewPriceRepo(client *Client, log *slog.Logger) *PriceRepo {
	return &PriceRepo{client: client, log: log}
}

// SavePrice присваивает наблюдению следующий ID и вставляет документ.
func (r *PriceRepo) SavePrice(ctx context.Context, p domain.PriceObservation) (domain.PriceObservation, error) {
	if p.PriceUSD <= 0 {
		return domain.PriceObservation{}, fmt.Errorf("%w: save price: price_usd must be positive", domain.ErrStorage)
	}
	id, err := r.nextID(ctx)
	if err != nil {
		r.log.Debug("SavePrice next id failed", "error", err)
		return domain.PriceObservation{}, classify("save price", err)
	}

	doc := newPriceDoc(id, p)
	if _, err := r.client.Coll().InsertOne(ctx, doc); err != nil {
		r.log.Debug("SavePrice failed", "error", err)
		return domain.PriceObservation{}, classify("save price", err)
	}
	return doc.toDomain(), nil
}

// nextID атомарно увеличивает счётчик коллекции.
func (r *PriceRepo) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	res := r.client.counters().FindOneAndUpdate(ctx,
		bson.M{"_id": r.client.cfg.Collection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	)
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&counter); err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// GetPrices возвращает наблюдения с start <= timestamp <= end, новые сначала.
func (r *PriceRepo) GetPrices(ctx context.Context, start, end time.Time) ([]domain.PriceObservation, error) {
	filter := bson.M{"timestamp": bson.M{
		"$gte": domain.NaiveUTC(start),
		"$lte": domain.NaiveUTC(end),
	}}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.client.Coll().Find(ctx, filter, opts)
	if err != nil {
		r.log.Debug("GetPrices failed", "error", err)
		return nil, classify("get prices", err)
	}
	defer cursor.Close(ctx)

	var docs []priceDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classify("get prices", err)
	}
	list := make([]domain.PriceObservation, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.toDomain())
	}
	return list, nil
}

// Ping проверяет доступность БД.
func (r *PriceRepo) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, nil); err != nil {
		return classify("ping", err)
	}
	return nil
}

// classify относит ошибку драйвера к ErrStorageUnavailable (сеть, таймаут) или ErrStorage.
func classify(op string, err error) error {
	if isConnError(err) {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}

func isConnError(err error) bool {
	return mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
