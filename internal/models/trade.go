package models

import "time"

type Fee struct {
	Cost     float64 `json:"cost"`
	Currency string  `json:"currency"`
}

type Trade struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Side      OrderSide `json:"side"`
	Price     float64   `json:"price"`
	Amount    float64   `json:"amount"`
	Cost      float64   `json:"cost"`
	Fee       Fee       `json:"fee"`
	Timestamp int64     `json:"timestamp"`
	Datetime  time.Time `json:"datetime"`
}
