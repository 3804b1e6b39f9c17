package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Krisnadwisaputra/Lumos-Trade/internal/exchange"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/market"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/models"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/symbol"
)

const defaultTradeLimit = 50

type ExchangeHandler struct {
	mode          exchange.Mode
	ex            exchange.Client
	store         *market.Store
	log           *zap.Logger
	defaultSymbol string
}

type createOrderRequest struct {
	Symbol   string  `json:"symbol" binding:"required"`
	Side     string  `json:"side" binding:"required,oneof=buy sell"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Type     string  `json:"type" binding:"omitempty,oneof=limit market"`
	Price    float64 `json:"price" binding:"omitempty,gt=0"`
}

// Balance returns account balances per asset.
func (h *ExchangeHandler) Balance(c *gin.Context) {
	if h.mode == exchange.ModeSimulated {
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"balance": map[string]models.AssetBalance{
				"USDT": {Free: 10000.00, Locked: 0, Total: 10000.00},
				"BTC":  {Free: 0.5, Locked: 0, Total: 0.5},
				"ETH":  {Free: 5.0, Locked: 0, Total: 5.0},
			},
			"simulated": true,
			"timestamp": time.Now(),
		})
		return
	}

	balances, err := h.ex.Balances(c.Request.Context())
	if err != nil {
		writeExchangeError(c, h.log, "Balances", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"balance":   balances,
		"timestamp": time.Now(),
	})
}

// Orders lists open orders, optionally filtered by symbol.
func (h *ExchangeHandler) Orders(c *gin.Context) {
	display := c.Query("symbol")

	if h.mode == exchange.ModeSimulated {
		orders := h.simOpenOrders()
		if display != "" {
			want := symbol.ToDisplay(symbol.ToExchange(display))
			filtered := make([]models.Order, 0, len(orders))
			for _, o := range orders {
				if o.Symbol == want {
					filtered = append(filtered, o)
				}
			}
			orders = filtered
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"orders":    orders,
			"simulated": true,
			"timestamp": time.Now(),
		})
		return
	}

	var sym string
	if display != "" {
		sym = symbol.ToExchange(display)
	}
	orders, err := h.ex.OpenOrders(c.Request.Context(), sym)
	if err != nil {
		writeExchangeError(c, h.log, "OpenOrders", err)
		return
	}
	for i := range orders {
		orders[i].Symbol = symbol.ToDisplay(orders[i].Symbol)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"orders":    orders,
		"timestamp": time.Now(),
	})
}

// Trades lists the account's recent trades for a symbol.
func (h *ExchangeHandler) Trades(c *gin.Context) {
	display := c.DefaultQuery("symbol", h.defaultSymbol)
	limit := defaultTradeLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	if h.mode == exchange.ModeSimulated {
		want := symbol.ToDisplay(symbol.ToExchange(display))
		trades := h.simTrades(want)
		if len(trades) > limit {
			trades = trades[:limit]
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"trades":    trades,
			"simulated": true,
			"timestamp": time.Now(),
		})
		return
	}

	trades, err := h.ex.Trades(c.Request.Context(), symbol.ToExchange(display), limit)
	if err != nil {
		writeExchangeError(c, h.log, "Trades", err)
		return
	}
	for i := range trades {
		trades[i].Symbol = symbol.ToDisplay(trades[i].Symbol)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"trades":    trades,
		"timestamp": time.Now(),
	})
}

// CreateOrder places an order, or fabricates one in simulated mode.
func (h *ExchangeHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "symbol, side and quantity are required: "+err.Error())
		return
	}

	// type and price are both optional: a bare order is a market order,
	// a price alone implies limit. Only an explicit limit order without
	// a price is rejected.
	orderType := models.OrderType(req.Type)
	if orderType == "" {
		if req.Price > 0 {
			orderType = models.OrderTypeLimit
		} else {
			orderType = models.OrderTypeMarket
		}
	}
	if orderType == models.OrderTypeLimit && req.Price <= 0 {
		badRequest(c, "price is required for limit orders")
		return
	}

	sym := symbol.ToExchange(req.Symbol)

	if h.mode == exchange.ModeSimulated {
		now := time.Now()
		price := req.Price
		if orderType == models.OrderTypeMarket {
			price = h.store.GetOrCreate(sym).Price
		}
		order := models.Order{
			ID:        strconv.FormatInt(now.UnixMilli(), 10),
			Symbol:    symbol.ToDisplay(sym),
			Side:      models.OrderSide(req.Side),
			Type:      orderType,
			Price:     price,
			Amount:    req.Quantity,
			Filled:    0,
			Remaining: req.Quantity,
			Status:    models.Open,
			Timestamp: now.UnixMilli(),
			Datetime:  now,
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"order":     order,
			"simulated": true,
			"timestamp": now,
		})
		return
	}

	order, err := h.ex.CreateOrder(c.Request.Context(), exchange.CreateOrderRequest{
		Symbol:   sym,
		Side:     models.OrderSide(req.Side),
		Type:     orderType,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		writeExchangeError(c, h.log, "CreateOrder", err)
		return
	}
	order.Symbol = symbol.ToDisplay(order.Symbol)
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"order":     order,
		"timestamp": time.Now(),
	})
}

// CancelOrder cancels an open order by id and symbol.
func (h *ExchangeHandler) CancelOrder(c *gin.Context) {
	orderID := c.Query("orderId")
	display := c.Query("symbol")
	if orderID == "" || display == "" {
		badRequest(c, "orderId and symbol are required")
		return
	}

	if h.mode == exchange.ModeSimulated {
		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"message":   "Order " + orderID + " cancelled",
			"simulated": true,
			"timestamp": time.Now(),
		})
		return
	}

	if err := h.ex.CancelOrder(c.Request.Context(), orderID, symbol.ToExchange(display)); err != nil {
		writeExchangeError(c, h.log, "CancelOrder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Order " + orderID + " cancelled",
		"timestamp": time.Now(),
	})
}

// simOpenOrders is the illustrative open-order payload served when no
// exchange account is connected.
func (h *ExchangeHandler) simOpenOrders() []models.Order {
	now := time.Now()
	return []models.Order{
		{
			ID:        "123456789",
			Symbol:    "BTC/USDT",
			Side:      models.Buy,
			Type:      models.OrderTypeLimit,
			Price:     64000.0,
			Amount:    0.01,
			Filled:    0.0,
			Remaining: 0.01,
			Status:    models.Open,
			Timestamp: now.UnixMilli(),
			Datetime:  now,
		},
	}
}

func (h *ExchangeHandler) simTrades(display string) []models.Trade {
	now := time.Now()
	return []models.Trade{
		{
			ID:        strconv.FormatInt(now.Add(-time.Hour).UnixMilli(), 10),
			Symbol:    display,
			Side:      models.Buy,
			Price:     64500.0,
			Amount:    0.01,
			Cost:      645.0,
			Fee:       models.Fee{Cost: 0.65, Currency: "USDT"},
			Timestamp: now.Add(-time.Hour).UnixMilli(),
			Datetime:  now.Add(-time.Hour),
		},
		{
			ID:        strconv.FormatInt(now.Add(-30*time.Minute).UnixMilli(), 10),
			Symbol:    display,
			Side:      models.Sell,
			Price:     65000.0,
			Amount:    0.01,
			Cost:      650.0,
			Fee:       models.Fee{Cost: 0.65, Currency: "USDT"},
			Timestamp: now.Add(-30 * time.Minute).UnixMilli(),
			Datetime:  now.Add(-30 * time.Minute),
		},
	}
}
