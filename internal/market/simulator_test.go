package market

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func TestTickUpdatesEverySymbol(t *testing.T) {
	store := NewStore()
	sim := NewSimulator(store, 2*time.Second, 0.1, zap.NewNop())

	before := map[string]float64{}
	for _, q := range store.Snapshot() {
		before[q.Symbol] = q.Price
	}

	sim.Tick()

	for _, q := range store.Snapshot() {
		old := before[q.Symbol]
		delta := q.Price - old

		assert.False(t, math.IsNaN(q.Price) || math.IsInf(q.Price, 0))
		assert.GreaterOrEqual(t, q.Price, 0.0)
		// perturbation bounded by the drift fraction of the old price
		assert.LessOrEqual(t, math.Abs(delta), 0.5*0.1*old+1e-9)
		// change percent is the applied perturbation over the new price
		assert.InDelta(t, delta/q.Price*100, q.ChangePercent, 1e-9)
	}
}

func TestManyTicksStayFiniteAndNonNegative(t *testing.T) {
	store := NewStore()
	store.GetOrCreate("DOGEUSDT")
	sim := NewSimulator(store, 2*time.Second, 0.1, zap.NewNop())

	for i := 0; i < 1000; i++ {
		sim.Tick()
	}

	for _, q := range store.Snapshot() {
		require.False(t, math.IsNaN(q.Price) || math.IsInf(q.Price, 0), q.Symbol)
		require.GreaterOrEqual(t, q.Price, 0.0, q.Symbol)
	}
}

func TestGetOrCreateIsLazyAndStable(t *testing.T) {
	store := NewStore()
	n := store.Len()

	q1 := store.GetOrCreate("SOLUSDT")
	assert.Equal(t, n+1, store.Len())
	assert.GreaterOrEqual(t, q1.Price, 0.0)

	// second read without an intervening tick returns the same entry
	q2 := store.GetOrCreate("SOLUSDT")
	assert.Equal(t, n+1, store.Len())
	assert.Equal(t, q1, q2)
}

func TestConcurrentReadsDuringTicks(t *testing.T) {
	store := NewStore()
	sim := NewSimulator(store, 2*time.Second, 0.1, zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			sim.Tick()
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				for _, q := range store.Snapshot() {
					if math.IsNaN(q.Price) || q.Price < 0 {
						t.Errorf("torn or invalid quote: %+v", q)
						return
					}
				}
				store.GetOrCreate("BTCUSDT")
			}
		}()
	}

	wg.Wait()
}

func TestRunStopsOnCancel(t *testing.T) {
	store := NewStore()
	sim := NewSimulator(store, time.Millisecond, 0.1, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.NoError(t, sim.Run(ctx))
}
