package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Krisnadwisaputra/Lumos-Trade/internal/handler"
)

func HealthRoutes(r *gin.Engine, h *handler.Handler) {
	r.GET("/health", h.Market.Health)
}

func MarketRoutes(r *gin.Engine, h *handler.Handler) {
	r.GET("/current-price", h.Market.CurrentPrice)
}

func ExchangeRoutes(r *gin.Engine, h *handler.Handler) {
	ex := r.Group("/exchange")

	ex.GET("/balance", h.Exchange.Balance)
	ex.GET("/orders", h.Exchange.Orders)
	ex.GET("/trades", h.Exchange.Trades)
	ex.POST("/create-order", h.Exchange.CreateOrder)
	ex.DELETE("/cancel-order", h.Exchange.CancelOrder)
}

func WebSocketRoutes(r *gin.Engine, h *handler.Handler) {
	if h.Hub != nil {
		r.GET("/ws/market-prices", h.Hub.HandleWebSocket)
	}
}

func StaticRoutes(r *gin.Engine, staticDir string) {
	r.NoRoute(handler.ServeFrontend(staticDir))
}
