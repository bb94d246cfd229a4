// Package scheduler — периодическое обновление цены по cron-расписанию.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"finch/internal/ports"
)

const tickTimeout = 30 * time.Second

// Poller по расписанию сбрасывает кэш цены и запрашивает текущую цену,
// так что каждый тик записывает новое наблюдение.
type Poller struct {
	schedule cron.Schedule
	spec     string
	uc       ports.IPriceUseCase
	log      *slog.Logger
}

// NewPoller разбирает расписание (5 полей cron или дескриптор вида "@every 1m").
func NewPoller(spec string, uc ports.IPriceUseCase, log *slog.Logger) (*Poller, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("poller schedule %q: %w", spec, err)
	}
	return &Poller{schedule: schedule, spec: spec, uc: uc, log: log}, nil
}

// Run запускает планировщик и блокируется до отмены ctx. Дожидается завершения текущего тика.
func (p *Poller) Run(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{p.log})))
	c.Schedule(p.schedule, cron.FuncJob(func() { p.Tick(ctx) }))
	c.Start()
	p.log.Info("price poller started", "schedule", p.spec)

	<-ctx.Done()
	<-c.Stop().Done()
	p.log.Info("price poller stopped")
	return nil
}

// Tick — одно обновление цены.
func (p *Poller) Tick(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, tickTimeout)
	defer cancel()

	if err := p.uc.InvalidateCache(ctx); err != nil {
		p.log.Warn("poller invalidate cache", "error", err)
	}
	price, err := p.uc.CurrentPrice(ctx)
	if err != nil {
		p.log.Error("poller fetch price", "error", err)
		return
	}
	p.log.Info("price polled", "price_usd", price)
}

// cronLogger направляет служебные сообщения cron в slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
