// Package market holds the in-memory quote state and the background
// price simulator that drifts it when no live exchange is connected.
package market

import (
	"math/rand"
	"sync"
	"time"

	"github.com/Krisnadwisaputra/Lumos-Trade/internal/models"
)

// Lazy-created symbols start in this price band, matching the
// illustrative data the API has always served.
const (
	seedPriceBase   = 60000.0
	seedPriceSpread = 2000.0
)

// Store is the shared symbol -> quote map. All access goes through the
// mutex; a quote's price, change and timestamp are always replaced
// together so readers never see a torn record. Entries are created
// lazily and never deleted.
type Store struct {
	mu     sync.RWMutex
	quotes map[string]models.Quote
}

// NewStore returns a store seeded with the default instruments.
func NewStore() *Store {
	now := time.Now()
	return &Store{
		quotes: map[string]models.Quote{
			"BTCUSDT": {Symbol: "BTCUSDT", Price: 65000.0, ChangePercent: 1.2, UpdatedAt: now},
			"ETHUSDT": {Symbol: "ETHUSDT", Price: 3200.0, ChangePercent: 0.8, UpdatedAt: now},
		},
	}
}

// Get returns the quote for an exchange-form symbol, if present.
func (s *Store) Get(sym string) (models.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[sym]
	return q, ok
}

// GetOrCreate returns the quote for sym, lazily inserting a plausible
// starting quote for symbols that have never been requested.
func (s *Store) GetOrCreate(sym string) models.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q, ok := s.quotes[sym]; ok {
		return q
	}
	q := models.Quote{
		Symbol:        sym,
		Price:         seedPriceBase + rand.Float64()*seedPriceSpread,
		ChangePercent: rand.Float64()*2 - 1,
		UpdatedAt:     time.Now(),
	}
	s.quotes[sym] = q
	return q
}

// Snapshot returns a copy of every quote.
func (s *Store) Snapshot() []models.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		out = append(out, q)
	}
	return out
}

// Len reports how many symbols are tracked.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quotes)
}
