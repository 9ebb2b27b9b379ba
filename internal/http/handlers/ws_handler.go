package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/estate-agency/frontend/internal/events"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WSHub fans transaction events out to the dashboards of their accounts.
type WSHub struct {
	subscriber  events.Subscriber
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[string][]*websocket.Conn // lower-case account -> conns
}

func NewWSHub(subscriber events.Subscriber, log *zap.Logger) *WSHub {
	return &WSHub{
		subscriber:  subscriber,
		log:         log,
		connections: make(map[string][]*websocket.Conn),
	}
}

func (h *WSHub) Start(ctx context.Context) error {
	return h.subscriber.Subscribe(ctx, events.StreamTx, h.Dispatch)
}

// Dispatch sends the event to every connection of the event's account.
func (h *WSHub) Dispatch(event events.Event) {
	account := strings.ToLower(event.Account())
	if account == "" {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[account] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug("ws write failed", zap.String("account", account), zap.Error(err))
		}
	}
}

func (h *WSHub) ConnectionCount(account string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[strings.ToLower(account)])
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// GET /ws/:account
func (h *WSHub) HandleWS(conn *websocket.Conn) {
	account := strings.ToLower(conn.Params("account"))

	h.mu.Lock()
	h.connections[account] = append(h.connections[account], conn)
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		conns := h.connections[account]
		for i, c := range conns {
			if c == conn {
				h.connections[account] = append(conns[:i], conns[i+1:]...)
				break
			}
		}
		if len(h.connections[account]) == 0 {
			delete(h.connections, account)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
