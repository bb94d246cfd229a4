// Package health проверяет доступность зависимостей сервиса для /health, readiness и gRPC Health.
package health

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"finch/internal/ports"
)

const pingTimeout = 2 * time.Second

// Dependency — проверяемая зависимость. Critical учитывается в readiness.
type Dependency struct {
	Name     string
	Pinger   ports.IPinger
	Critical bool
}

// Status — результат проверки одной зависимости.
type Status struct {
	IsHealthy bool   `json:"is_healthy"`
	Message   string `json:"message"`
}

// Report — сводный результат.
type Report struct {
	IsHealthy bool              `json:"is_healthy"`
	Services  map[string]Status `json:"services"`
}

// Checker пингует зависимости параллельно, каждую со своим таймаутом.
type Checker struct {
	deps []Dependency
	log  *slog.Logger
}

// NewChecker создаёт проверку по списку зависимостей.
func NewChecker(log *slog.Logger, deps ...Dependency) *Checker {
	return &Checker{deps: deps, log: log}
}

// Check проверяет все зависимости. Сервис здоров, если здоровы все.
func (c *Checker) Check(ctx context.Context) Report {
	statuses := make([]Status, len(c.deps))
	var wg sync.WaitGroup
	for i, d := range c.deps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			statuses[i] = c.ping(ctx, d)
		}()
	}
	wg.Wait()

	report := Report{IsHealthy: true, Services: make(map[string]Status, len(c.deps))}
	for i, d := range c.deps {
		report.Services[d.Name] = statuses[i]
		if !statuses[i].IsHealthy {
			report.IsHealthy = false
		}
	}
	return report
}

// CheckOne проверяет зависимость по имени. found == false — такой зависимости нет.
func (c *Checker) CheckOne(ctx context.Context, name string) (st Status, found bool) {
	for _, d := range c.deps {
		if d.Name == name {
			return c.ping(ctx, d), true
		}
	}
	return Status{}, false
}

// Ready — здоровы ли все критичные зависимости.
func (c *Checker) Ready(ctx context.Context) bool {
	for _, d := range c.deps {
		if d.Critical && !c.ping(ctx, d).IsHealthy {
			return false
		}
	}
	return true
}

// Names возвращает имена зависимостей в порядке регистрации.
func (c *Checker) Names() []string {
	names := make([]string, 0, len(c.deps))
	for _, d := range c.deps {
		names = append(names, d.Name)
	}
	return names
}

func (c *Checker) ping(ctx context.Context, d Dependency) Status {
	if d.Pinger == nil {
		return Status{IsHealthy: false, Message: d.Name + " is not configured"}
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := d.Pinger.Ping(pingCtx); err != nil {
		c.log.Warn("health check failed", "service", d.Name, "error", err)
		return Status{IsHealthy: false, Message: d.Name + " is unavailable"}
	}
	return Status{IsHealthy: true, Message: d.Name + " is healthy"}
}
