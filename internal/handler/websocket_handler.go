package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Krisnadwisaputra/Lumos-Trade/internal/market"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/models"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/symbol"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WSMessage is the client -> server subscription protocol.
type WSMessage struct {
	Type    string   `json:"type"`    // "subscribe", "unsubscribe"
	Symbols []string `json:"symbols"` // display form, e.g. ["BTC/USDT"]
}

type wsClient struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	symbols     map[string]bool // display-form subscriptions
	symbolsLock sync.RWMutex
}

// Hub fans simulated quote updates out to websocket clients. A
// broadcaster goroutine snapshots the quote store each interval and
// pushes it to every client, filtered by subscription.
type Hub struct {
	clients    map[*wsClient]bool
	broadcast  chan []models.Quote
	register   chan *wsClient
	unregister chan *wsClient
	mu         sync.RWMutex
	store      *market.Store
	log        *zap.Logger
}

func NewHub(store *market.Store, log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan []models.Quote, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		store:      store,
		log:        log,
	}
}

// Run owns the client set until the context is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return nil

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			h.log.Info("ws client connected", zap.Int("clients", n))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.log.Info("ws client disconnected", zap.Int("clients", n))

		case quotes := <-h.broadcast:
			// write lock: slow clients are evicted while iterating
			h.mu.Lock()
			for client := range h.clients {
				filtered := client.filterQuotes(quotes)
				if len(filtered) == 0 {
					continue
				}
				data, err := json.Marshal(filtered)
				if err != nil {
					h.log.Error("marshal quotes", zap.Error(err))
					continue
				}
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast snapshots the store each interval and feeds the hub.
func (h *Hub) Broadcast(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			snapshot := h.store.Snapshot()
			quotes := make([]models.Quote, 0, len(snapshot))
			for _, q := range snapshot {
				q.Symbol = symbol.ToDisplay(q.Symbol)
				quotes = append(quotes, q)
			}
			if len(quotes) == 0 {
				continue
			}
			select {
			case h.broadcast <- quotes:
			default:
			}
		}
	}
}

// HandleWebSocket upgrades the connection and starts the pumps.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, 256),
		symbols: make(map[string]bool),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// filterQuotes keeps only the symbols the client subscribed to. No
// subscriptions means everything.
func (c *wsClient) filterQuotes(quotes []models.Quote) []models.Quote {
	c.symbolsLock.RLock()
	defer c.symbolsLock.RUnlock()

	if len(c.symbols) == 0 {
		return quotes
	}
	var filtered []models.Quote
	for _, q := range quotes {
		if c.symbols[q.Symbol] {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *wsClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("ws read error", zap.Error(err))
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.hub.log.Warn("ws bad message", zap.Error(err))
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *wsClient) handleMessage(msg WSMessage) {
	c.symbolsLock.Lock()
	defer c.symbolsLock.Unlock()

	switch msg.Type {
	case "subscribe":
		for _, raw := range msg.Symbols {
			display := symbol.ToDisplay(symbol.ToExchange(raw))
			c.symbols[display] = true
			// make sure a quote exists so the client gets updates
			c.hub.store.GetOrCreate(symbol.ToExchange(raw))
		}
	case "unsubscribe":
		for _, raw := range msg.Symbols {
			delete(c.symbols, symbol.ToDisplay(symbol.ToExchange(raw)))
		}
	default:
		c.hub.log.Warn("ws unknown message type", zap.String("type", msg.Type))
	}
}
