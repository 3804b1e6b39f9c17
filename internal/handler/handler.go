package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Krisnadwisaputra/Lumos-Trade/internal/exchange"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/market"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/service"
)

type Handler struct {
	Market   *MarketHandler
	Exchange *ExchangeHandler
	Hub      *Hub
}

// Deps carries everything the handlers need. Mode is decided once at
// startup and never re-checked against globals. Exchange is nil in
// simulated mode; Cache may be nil (no-op) in either mode.
type Deps struct {
	Mode          exchange.Mode
	Exchange      exchange.Client
	Store         *market.Store
	Cache         *service.CacheService
	Logger        *zap.Logger
	DefaultSymbol string
}

func New(d Deps) *Handler {
	var hub *Hub
	if d.Mode == exchange.ModeSimulated {
		// the live path has no local tick source to stream from
		hub = NewHub(d.Store, d.Logger)
	}
	return &Handler{
		Market: &MarketHandler{
			mode:          d.Mode,
			ex:            d.Exchange,
			store:         d.Store,
			cache:         d.Cache,
			log:           d.Logger,
			defaultSymbol: d.DefaultSymbol,
		},
		Exchange: &ExchangeHandler{
			mode:          d.Mode,
			ex:            d.Exchange,
			store:         d.Store,
			log:           d.Logger,
			defaultSymbol: d.DefaultSymbol,
		},
		Hub: hub,
	}
}

// badRequest reports a validation failure before any external call or
// state mutation happens.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":    "error",
		"error":     msg,
		"timestamp": time.Now(),
	})
}

// writeExchangeError translates a classified exchange failure into a
// structured response. Raw upstream errors never reach the caller; the
// full detail is logged server-side.
func writeExchangeError(c *gin.Context, logger *zap.Logger, where string, err error) {
	exErr := exchange.Classify(err)

	status := http.StatusInternalServerError
	msg := "internal server error"
	switch exErr.Kind {
	case exchange.KindUnauthorized:
		status = http.StatusUnauthorized
		msg = "invalid exchange credentials"
	case exchange.KindRateLimited:
		status = http.StatusTooManyRequests
		msg = "exchange rate limit exceeded"
	case exchange.KindNotFound:
		status = http.StatusNotFound
		msg = "order not found"
	}

	if status == http.StatusInternalServerError {
		logger.Error("exchange call failed",
			zap.String("where", where),
			zap.Error(err),
		)
	} else {
		logger.Warn("exchange call rejected",
			zap.String("where", where),
			zap.String("kind", exErr.Kind.String()),
			zap.Int64("code", exErr.Code),
		)
	}

	c.JSON(status, gin.H{
		"status":    "error",
		"error":     msg,
		"timestamp": time.Now(),
	})
}
