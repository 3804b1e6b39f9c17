package market

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Krisnadwisaputra/Lumos-Trade/internal/models"
)

// Simulator drifts every quote in the store on a fixed interval.
// Perturbations scale with the current price so percentage moves stay
// comparable across assets regardless of price level. Tick is exported
// so tests can step the simulation without wall-clock sleeps.
type Simulator struct {
	store    *Store
	interval time.Duration
	drift    float64
	rng      *rand.Rand
	log      *zap.Logger
}

func NewSimulator(store *Store, interval time.Duration, drift float64, log *zap.Logger) *Simulator {
	if drift <= 0 || drift > 0.1 {
		drift = 0.1
	}
	return &Simulator{
		store:    store,
		interval: interval,
		drift:    drift,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      log,
	}
}

// Run ticks until the context is cancelled.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("price simulator started",
		zap.Duration("interval", s.interval),
		zap.Float64("drift", s.drift),
	)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("price simulator stopped")
			return nil
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick applies one random perturbation to every tracked symbol. Each
// quote's price, change and timestamp are replaced in one step under
// the store lock.
func (s *Simulator) Tick() {
	now := time.Now()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for sym, q := range s.store.quotes {
		delta := (s.rng.Float64() - 0.5) * s.drift * q.Price
		price := q.Price + delta
		if price < 0 {
			// unreachable with proportional drift, kept as an explicit floor
			price = 0
		}
		changePct := 0.0
		if price != 0 {
			changePct = delta / price * 100
		}
		s.store.quotes[sym] = models.Quote{
			Symbol:        sym,
			Price:         price,
			ChangePercent: changePct,
			UpdatedAt:     now,
		}
	}
}
