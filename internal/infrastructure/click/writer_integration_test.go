//go:build integration

package click

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finch/internal/domain"
	"finch/internal/pkg/testutil"
)

func TestPriceWriter_WriteAndCount(t *testing.T) {
	ch := testutil.StartClickHouse(t)
	ctx := context.Background()

	client, err := New(ctx, Config{
		Host:     ch.Host,
		Port:     ch.Port,
		Database: ch.Database,
		Username: ch.User,
		Password: ch.Password,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	w := NewPriceWriter(client)
	require.NoError(t, w.EnsureTable(ctx))
	require.NoError(t, w.EnsureTable(ctx))

	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		p := domain.NewPriceObservation(60000+float64(i), domain.SourceCoinGecko, base.Add(time.Duration(i)*time.Minute))
		p.ID = int64(i)
		require.NoError(t, w.WritePrice(ctx, p))
	}

	n, err := w.CountSince(ctx, base.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}
