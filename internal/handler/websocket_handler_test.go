package handler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Krisnadwisaputra/Lumos-Trade/internal/market"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/models"
)

func TestBroadcastPublishesDisplayFormSnapshots(t *testing.T) {
	store := market.NewStore()
	hub := NewHub(store, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.Broadcast(ctx, time.Millisecond) }()

	select {
	case quotes := <-hub.broadcast:
		require.NotEmpty(t, quotes)
		seen := map[string]bool{}
		for _, q := range quotes {
			seen[q.Symbol] = true
		}
		assert.True(t, seen["BTC/USDT"])
		assert.True(t, seen["ETH/USDT"])
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestRunEvictsBlockedClients(t *testing.T) {
	store := market.NewStore()
	hub := NewHub(store, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.Run(ctx) }()

	// a client whose send buffer is full and never drained
	blocked := &wsClient{hub: hub, send: make(chan []byte, 1), symbols: map[string]bool{}}
	blocked.send <- []byte("backlog")
	hub.register <- blocked

	hub.broadcast <- []models.Quote{{Symbol: "BTC/USDT", Price: 65000}}

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 0
	}, time.Second, 5*time.Millisecond, "blocked client was not evicted")

	cancel()
	require.NoError(t, <-done)
}

func TestFilterQuotes(t *testing.T) {
	quotes := []models.Quote{
		{Symbol: "BTC/USDT", Price: 65000},
		{Symbol: "ETH/USDT", Price: 3200},
	}

	c := &wsClient{symbols: map[string]bool{}}
	// no subscriptions: everything passes through
	assert.Len(t, c.filterQuotes(quotes), 2)

	c.symbols["ETH/USDT"] = true
	filtered := c.filterQuotes(quotes)
	require.Len(t, filtered, 1)
	assert.Equal(t, "ETH/USDT", filtered[0].Symbol)
}
