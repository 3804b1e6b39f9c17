package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Krisnadwisaputra/Lumos-Trade/internal/models"
)

// CacheService caches live exchange tickers for a short TTL so bursts
// of /current-price requests don't each hit the venue. Simulated mode
// never touches it; its quotes already live in process memory.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, ttl time.Duration) *CacheService {
	return &CacheService{client: client, ttl: ttl}
}

func tickerKey(symbol string) string {
	return fmt.Sprintf("ticker:%s", symbol)
}

// GetQuote returns the cached ticker for an exchange-form symbol, or
// nil on a cache miss.
func (s *CacheService) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	data, err := s.client.Get(ctx, tickerKey(symbol)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var q models.Quote
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("unmarshal cached quote: %w", err)
	}
	return &q, nil
}

// SetQuote caches a ticker under the service TTL.
func (s *CacheService) SetQuote(ctx context.Context, q models.Quote) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal quote: %w", err)
	}
	return s.client.Set(ctx, tickerKey(q.Symbol), data, s.ttl).Err()
}
