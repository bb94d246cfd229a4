// Package testutil содержит хелперы интеграционных тестов: поднимает зависимости в Docker через testcontainers.
//
// Интеграционные тесты собираются с тегом integration и пропускаются в -short режиме:
//
//	go test -tags integration ./...
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const startupTimeout = 2 * time.Minute

// Endpoint — адрес поднятого контейнера.
type Endpoint struct {
	Host string
	Port string
}

// Addr возвращает "host:port".
func (e Endpoint) Addr() string {
	return fmt.Sprintf("%s:%s", e.Host, e.Port)
}

// Postgres — параметры тестовой БД.
type Postgres struct {
	Endpoint
	User     string
	Password string
	DBName   string
}

// SkipIfShort пропускает интеграционный тест в -short режиме.
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}
}

// StartPostgres поднимает PostgreSQL и останавливает его по завершении теста.
func StartPostgres(t *testing.T) Postgres {
	t.Helper()
	SkipIfShort(t)
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	const user, password, dbName = "test", "test", "finch"
	c, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	terminateOnCleanup(t, c)
	if err != nil {
		t.Fatalf("postgres container: %v", err)
	}
	return Postgres{Endpoint: endpoint(t, ctx, c, "5432"), User: user, Password: password, DBName: dbName}
}

// StartRedis поднимает Redis и останавливает его по завершении теста.
func StartRedis(t *testing.T) Endpoint {
	t.Helper()
	SkipIfShort(t)
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	c, err := redis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").WithStartupTimeout(30*time.Second),
		),
	)
	terminateOnCleanup(t, c)
	if err != nil {
		t.Fatalf("redis container: %v", err)
	}
	return endpoint(t, ctx, c, "6379")
}

// StartMongo поднимает MongoDB и возвращает URI подключения.
func StartMongo(t *testing.T) string {
	t.Helper()
	SkipIfShort(t)
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	c, err := mongodb.Run(ctx,
		"mongo:7",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Waiting for connections").WithStartupTimeout(60*time.Second),
		),
	)
	terminateOnCleanup(t, c)
	if err != nil {
		t.Fatalf("mongo container: %v", err)
	}
	e := endpoint(t, ctx, c, "27017")
	return fmt.Sprintf("mongodb://%s", e.Addr())
}

// ClickHouse — параметры тестового ClickHouse (нативный протокол).
type ClickHouse struct {
	Endpoint
	User     string
	Password string
	Database string
}

// StartClickHouse поднимает ClickHouse и останавливает его по завершении теста.
func StartClickHouse(t *testing.T) ClickHouse {
	t.Helper()
	SkipIfShort(t)
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	const user, password, database = "default", "", "default"
	c, err := clickhouse.Run(ctx,
		"clickhouse/clickhouse-server:24-alpine",
		clickhouse.WithUsername(user),
		clickhouse.WithPassword(password),
		clickhouse.WithDatabase(database),
	)
	terminateOnCleanup(t, c)
	if err != nil {
		t.Fatalf("clickhouse container: %v", err)
	}
	return ClickHouse{Endpoint: endpoint(t, ctx, c, "9000"), User: user, Password: password, Database: database}
}

func endpoint(t *testing.T, ctx context.Context, c testcontainers.Container, port nat.Port) Endpoint {
	t.Helper()
	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		t.Fatalf("container port %s: %v", port, err)
	}
	return Endpoint{Host: host, Port: mapped.Port()}
}

func terminateOnCleanup(t *testing.T, c testcontainers.Container) {
	t.Helper()
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(c); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})
}
