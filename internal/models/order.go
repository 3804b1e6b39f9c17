package models

import "time"

type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

type OrderType string

const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
)

type OrderStatus string

const (
	Open            OrderStatus = "open"
	PartiallyFilled OrderStatus = "partially_filled"
	Filled          OrderStatus = "filled"
	Canceled        OrderStatus = "canceled"
	Rejected        OrderStatus = "rejected"
	Expired         OrderStatus = "expired"
)

// Order in the unified response schema. Symbol is in display form
// ("BTC/USDT"). Timestamp is epoch milliseconds, Datetime the same
// instant for human consumption.
type Order struct {
	ID        string      `json:"id"`
	Symbol    string      `json:"symbol"`
	Side      OrderSide   `json:"side"`
	Type      OrderType   `json:"type"`
	Price     float64     `json:"price"`
	Amount    float64     `json:"amount"`
	Filled    float64     `json:"filled"`
	Remaining float64     `json:"remaining"`
	Status    OrderStatus `json:"status"`
	Timestamp int64       `json:"timestamp"`
	Datetime  time.Time   `json:"datetime"`
}
