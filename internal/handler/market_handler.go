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
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/service"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/symbol"
)

type MarketHandler struct {
	mode          exchange.Mode
	ex            exchange.Client
	store         *market.Store
	cache         *service.CacheService
	log           *zap.Logger
	defaultSymbol string
}

// Health reports which data source the process is bound to.
func (h *MarketHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    h.mode.String(),
		"timestamp": time.Now(),
	})
}

// CurrentPrice returns the latest quote for a symbol, creating a
// simulated entry on first sight of an unknown symbol.
func (h *MarketHandler) CurrentPrice(c *gin.Context) {
	display := c.DefaultQuery("symbol", h.defaultSymbol)
	sym := symbol.ToExchange(display)

	if h.mode == exchange.ModeLive {
		h.livePrice(c, sym)
		return
	}

	q := h.store.GetOrCreate(sym)
	c.JSON(http.StatusOK, quoteResponse(q, true))
}

func (h *MarketHandler) livePrice(c *gin.Context, sym string) {
	ctx := c.Request.Context()

	if h.cache != nil {
		q, err := h.cache.GetQuote(ctx, sym)
		if err != nil {
			h.log.Warn("quote cache read failed", zap.Error(err))
		} else if q != nil {
			c.JSON(http.StatusOK, quoteResponse(*q, false))
			return
		}
	}

	q, err := h.ex.Ticker(ctx, sym)
	if err != nil {
		writeExchangeError(c, h.log, "Ticker", err)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetQuote(ctx, q); err != nil {
			h.log.Warn("quote cache write failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, quoteResponse(q, false))
}

func quoteResponse(q models.Quote, simulated bool) gin.H {
	resp := gin.H{
		"symbol":    symbol.ToDisplay(q.Symbol),
		"price":     strconv.FormatFloat(q.Price, 'f', -1, 64),
		"change":    strconv.FormatFloat(q.ChangePercent, 'f', -1, 64) + "%",
		"timestamp": q.UpdatedAt,
	}
	if simulated {
		resp["simulated"] = true
	}
	return resp
}
