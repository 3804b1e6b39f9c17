// Package exchange defines the unified client contract for the live
// trading venue and its Binance implementation.
package exchange

import (
	"context"

	"github.com/Krisnadwisaputra/Lumos-Trade/internal/models"
)

// Mode says where market and account data comes from. It is decided
// once at startup and never changes for the life of the process.
type Mode int

const (
	ModeSimulated Mode = iota
	ModeLive
)

func (m Mode) String() string {
	if m == ModeLive {
		return "connected_to_exchange"
	}
	return "simulation"
}

// CreateOrderRequest carries an order to the venue. Symbol is in
// exchange form; Price is ignored for market orders.
type CreateOrderRequest struct {
	Symbol   string
	Side     models.OrderSide
	Type     models.OrderType
	Quantity float64
	Price    float64
}

// Client is the live venue. All methods are bounded by the client's
// configured timeout and return errors classifiable via Classify.
type Client interface {
	// Ticker returns the last price and 24h change for a symbol.
	Ticker(ctx context.Context, symbol string) (models.Quote, error)
	// Balances returns non-zero asset balances for the account.
	Balances(ctx context.Context) (map[string]models.AssetBalance, error)
	// OpenOrders lists open orders, optionally filtered by symbol.
	OpenOrders(ctx context.Context, symbol string) ([]models.Order, error)
	// Trades lists the account's recent trades for a symbol.
	Trades(ctx context.Context, symbol string, limit int) ([]models.Trade, error)
	// CreateOrder places an order and returns it in the unified schema.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (models.Order, error)
	// CancelOrder cancels an open order by exchange order id.
	CancelOrder(ctx context.Context, orderID, symbol string) error
}
