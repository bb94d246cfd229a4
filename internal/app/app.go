package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	apigrpc "finch/internal/api/grpc"
	apihttp "finch/internal/api/http"
	pricectrl "finch/internal/api/http/controllers/price"
	"finch/internal/api/http/controllers/system"
	"finch/internal/api/http/middlewares"
	"finch/internal/infrastructure/click"
	"finch/internal/infrastructure/coingecko"
	"finch/internal/infrastructure/kafka"
	"finch/internal/infrastructure/mongo"
	"finch/internal/infrastructure/pg"
	"finch/internal/infrastructure/redis"
	"finch/internal/pkg/cacheaside"
	"finch/internal/pkg/logger"
	"finch/internal/ports"
	"finch/internal/scheduler"
	"finch/internal/usecase/health"
	"finch/internal/usecase/price"
)

const rateWindow = time.Minute

// App — приложение, хранит только конфиг.
type App struct {
	cfg Config
}

// New создаёт приложение с конфигом (подключения создаются в Run).
func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// closer — функция освобождения ресурса, вызывается при остановке в обратном порядке.
type closer func()

// Run подключает зависимости и запускает HTTP, gRPC, консьюмер и поллер. Блокируется до SIGINT/SIGTERM
// или до ошибки одного из компонентов.
func (a *App) Run() error {
	log := logger.NewWithLevel(a.cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	repo, storageName, closeRepo, err := a.openStorage(ctx, log)
	if err != nil {
		return err
	}
	closers = append(closers, closeRepo)

	rdb, err := redis.New(&a.cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable at startup, cache and rate limiter will degrade", "error", err)
	}
	closers = append(closers, func() { _ = rdb.Close() })
	cache := redis.NewCache(rdb, log)

	var producer ports.IProducer = kafka.NoopProducer{}
	if a.cfg.Kafka.Enabled {
		p := kafka.NewProducer(a.cfg.Kafka)
		closers = append(closers, func() { _ = p.Close() })
		producer = p
	}

	deps := []health.Dependency{
		{Name: storageName, Pinger: repo, Critical: true},
		{Name: "redis", Pinger: cache},
	}

	var analytics ports.IPriceAnalytics
	if a.cfg.ClickHouse.Enabled {
		w, closeClick, err := a.openAnalytics(ctx)
		if err != nil {
			return err
		}
		closers = append(closers, closeClick)
		analytics = w
		deps = append(deps, health.Dependency{Name: "clickhouse", Pinger: w})
	}

	uc := price.New(
		repo,
		coingecko.New(a.cfg.CoinGecko, nil, log),
		cacheaside.New(cache, log),
		producer,
		analytics,
		price.Config{CacheTTL: a.cfg.Price.CacheTTL, MaxRange: a.cfg.Price.MaxRange, Storage: a.cfg.Storage},
		log,
	)

	checker := health.NewChecker(log, deps...)

	srv := apihttp.NewServer(a.cfg.Server, log)
	srv.Use(middlewares.RateLimit(redis.NewWindow(rdb, log), middlewares.RateLimitConfig{Limit: a.cfg.RateLimit, Window: rateWindow}, log))
	srv.AddController(
		system.New(checker),
		pricectrl.New(uc, log),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Start(gctx) })

	if a.cfg.Grpc.Enabled {
		grpcSrv := apigrpc.NewServer(a.cfg.Grpc, checker, log)
		g.Go(func() error { return grpcSrv.Start(gctx) })
	}

	switch {
	case a.cfg.Kafka.Enabled && analytics != nil:
		consumer := kafka.NewConsumer(a.cfg.Kafka, uc, log)
		closers = append(closers, func() { _ = consumer.Close() })
		g.Go(func() error {
			// Падение консьюмера не останавливает API: аналитика вторична.
			if err := consumer.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("price consumer stopped", "error", err)
			}
			return nil
		})
	case analytics != nil:
		log.Warn("clickhouse enabled without kafka, analytics will stay idle")
	}

	if a.cfg.Poller.Schedule != "" {
		poller, err := scheduler.NewPoller(a.cfg.Poller.Schedule, uc, log)
		if err != nil {
			return err
		}
		g.Go(func() error { return poller.Run(gctx) })
	}

	log.Info("application started",
		"http", a.cfg.Server.Host+":"+a.cfg.Server.Port,
		"grpc_enabled", a.cfg.Grpc.Enabled,
		"storage", a.cfg.Storage,
		"kafka_enabled", a.cfg.Kafka.Enabled,
		"clickhouse_enabled", a.cfg.ClickHouse.Enabled,
	)
	return g.Wait()
}

// openStorage подключает выбранное хранилище наблюдений и готовит схему.
func (a *App) openStorage(ctx context.Context, log *slog.Logger) (ports.IPriceRepository, string, closer, error) {
	switch a.cfg.Storage {
	case StorageMongo:
		client, err := mongo.New(ctx, a.cfg.Mongo)
		if err != nil {
			return nil, "", nil, fmt.Errorf("mongo: %w", err)
		}
		closeFn := func() { _ = client.Close(context.Background()) }
		if err := client.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, "", nil, err
		}
		return mongo.NewPriceRepo(client, log), "mongo", closeFn, nil
	default:
		db, err := pg.New(&a.cfg.DB)
		if err != nil {
			return nil, "", nil, fmt.Errorf("db: %w", err)
		}
		closeFn := func() { _ = db.Close() }
		if err := pg.Migrate(db); err != nil {
			closeFn()
			return nil, "", nil, fmt.Errorf("migrate: %w", err)
		}
		return pg.NewPriceRepo(db, log), "postgres", closeFn, nil
	}
}

// openAnalytics подключает ClickHouse и создаёт таблицу аналитики.
func (a *App) openAnalytics(ctx context.Context) (*click.PriceWriter, closer, error) {
	ch, err := click.New(ctx, a.cfg.ClickHouse)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse: %w", err)
	}
	w := click.NewPriceWriter(ch)
	if err := w.EnsureTable(ctx); err != nil {
		_ = ch.Close()
		return nil, nil, err
	}
	return w, func() { _ = ch.Close() }, nil
}
