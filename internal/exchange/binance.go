package exchange

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/google/uuid"

	"github.com/Krisnadwisaputra/Lumos-Trade/internal/models"
)

// Binance is the live Client. Every call runs under a bounded timeout;
// the venue can otherwise hang a request indefinitely.
type Binance struct {
	api     *binance.Client
	timeout time.Duration
}

func NewBinance(apiKey, apiSecret string, timeout time.Duration) *Binance {
	return &Binance{
		api:     binance.NewClient(apiKey, apiSecret),
		timeout: timeout,
	}
}

func (b *Binance) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.timeout)
}

func (b *Binance) Ticker(ctx context.Context, symbol string) (models.Quote, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	stats, err := b.api.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
	if err != nil {
		return models.Quote{}, Classify(err)
	}
	if len(stats) == 0 {
		return models.Quote{}, &Error{Kind: KindUpstream, Message: "empty ticker response for " + symbol}
	}

	st := stats[0]
	return models.Quote{
		Symbol:        st.Symbol,
		Price:         parseFloat(st.LastPrice),
		ChangePercent: parseFloat(st.PriceChangePercent),
		UpdatedAt:     time.Now(),
	}, nil
}

func (b *Binance) Balances(ctx context.Context) (map[string]models.AssetBalance, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	acct, err := b.api.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, Classify(err)
	}

	balances := make(map[string]models.AssetBalance)
	for _, bal := range acct.Balances {
		free := parseFloat(bal.Free)
		locked := parseFloat(bal.Locked)
		if free == 0 && locked == 0 {
			continue
		}
		balances[bal.Asset] = models.AssetBalance{
			Free:   free,
			Locked: locked,
			Total:  free + locked,
		}
	}
	return balances, nil
}

func (b *Binance) OpenOrders(ctx context.Context, symbol string) ([]models.Order, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	svc := b.api.NewListOpenOrdersService()
	if symbol != "" {
		svc.Symbol(symbol)
	}
	raw, err := svc.Do(ctx)
	if err != nil {
		return nil, Classify(err)
	}

	orders := make([]models.Order, 0, len(raw))
	for _, o := range raw {
		amount := parseFloat(o.OrigQuantity)
		filled := parseFloat(o.ExecutedQuantity)
		orders = append(orders, models.Order{
			ID:        strconv.FormatInt(o.OrderID, 10),
			Symbol:    o.Symbol,
			Side:      models.OrderSide(strings.ToLower(string(o.Side))),
			Type:      models.OrderType(strings.ToLower(string(o.Type))),
			Price:     parseFloat(o.Price),
			Amount:    amount,
			Filled:    filled,
			Remaining: amount - filled,
			Status:    orderStatus(o.Status),
			Timestamp: o.Time,
			Datetime:  time.UnixMilli(o.Time),
		})
	}
	return orders, nil
}

func (b *Binance) Trades(ctx context.Context, symbol string, limit int) ([]models.Trade, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	raw, err := b.api.NewListTradesService().Symbol(symbol).Limit(limit).Do(ctx)
	if err != nil {
		return nil, Classify(err)
	}

	trades := make([]models.Trade, 0, len(raw))
	for _, t := range raw {
		side := models.Sell
		if t.IsBuyer {
			side = models.Buy
		}
		trades = append(trades, models.Trade{
			ID:     strconv.FormatInt(t.ID, 10),
			Symbol: t.Symbol,
			Side:   side,
			Price:  parseFloat(t.Price),
			Amount: parseFloat(t.Quantity),
			Cost:   parseFloat(t.QuoteQuantity),
			Fee: models.Fee{
				Cost:     parseFloat(t.Commission),
				Currency: t.CommissionAsset,
			},
			Timestamp: t.Time,
			Datetime:  time.UnixMilli(t.Time),
		})
	}
	return trades, nil
}

func (b *Binance) CreateOrder(ctx context.Context, req CreateOrderRequest) (models.Order, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	svc := b.api.NewCreateOrderService().
		Symbol(req.Symbol).
		Side(binance.SideType(strings.ToUpper(string(req.Side)))).
		Type(binance.OrderType(strings.ToUpper(string(req.Type)))).
		Quantity(formatFloat(req.Quantity)).
		NewClientOrderID("lumos-" + uuid.NewString())
	if req.Type == models.OrderTypeLimit {
		svc.TimeInForce(binance.TimeInForceTypeGTC).Price(formatFloat(req.Price))
	}

	res, err := svc.Do(ctx)
	if err != nil {
		return models.Order{}, Classify(err)
	}

	amount := parseFloat(res.OrigQuantity)
	filled := parseFloat(res.ExecutedQuantity)
	return models.Order{
		ID:        strconv.FormatInt(res.OrderID, 10),
		Symbol:    res.Symbol,
		Side:      models.OrderSide(strings.ToLower(string(res.Side))),
		Type:      models.OrderType(strings.ToLower(string(res.Type))),
		Price:     parseFloat(res.Price),
		Amount:    amount,
		Filled:    filled,
		Remaining: amount - filled,
		Status:    orderStatus(res.Status),
		Timestamp: res.TransactTime,
		Datetime:  time.UnixMilli(res.TransactTime),
	}, nil
}

func (b *Binance) CancelOrder(ctx context.Context, orderID, symbol string) error {
	id, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil {
		// the venue only ever issues numeric ids
		return &Error{Kind: KindNotFound, Message: "unknown order id " + orderID}
	}

	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	if _, err := b.api.NewCancelOrderService().Symbol(symbol).OrderID(id).Do(ctx); err != nil {
		return Classify(err)
	}
	return nil
}

func orderStatus(s binance.OrderStatusType) models.OrderStatus {
	switch s {
	case binance.OrderStatusTypeNew:
		return models.Open
	case binance.OrderStatusTypePartiallyFilled:
		return models.PartiallyFilled
	case binance.OrderStatusTypeFilled:
		return models.Filled
	case binance.OrderStatusTypeCanceled, binance.OrderStatusTypePendingCancel:
		return models.Canceled
	case binance.OrderStatusTypeRejected:
		return models.Rejected
	case binance.OrderStatusTypeExpired:
		return models.Expired
	default:
		return models.OrderStatus(strings.ToLower(string(s)))
	}
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
