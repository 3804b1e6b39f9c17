package models

import "time"

// Quote is a symbol's current price and percent change. Keyed by the
// exchange-normalized symbol (e.g. "BTCUSDT") in the quote store.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	ChangePercent float64   `json:"change"`
	UpdatedAt     time.Time `json:"timestamp"`
}
