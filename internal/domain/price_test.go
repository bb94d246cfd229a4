package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNaiveUTC(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)
	in := time.Date(2024, 6, 1, 3, 0, 0, 0, msk)

	got := NaiveUTC(in)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestNewPriceObservation(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 123456789, time.FixedZone("EST", -5*3600))

	p := NewPriceObservation(64000.5, SourceCoinGecko, now)

	assert.Equal(t, 64000.5, p.PriceUSD)
	assert.Equal(t, SourceCoinGecko, p.Source)
	assert.Equal(t, time.Date(2024, 6, 1, 17, 0, 0, 123456000, time.UTC), p.Timestamp)
	assert.Equal(t, p.Timestamp, p.CreatedAt)
}
