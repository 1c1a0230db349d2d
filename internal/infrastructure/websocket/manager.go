package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"reliefnet/internal/domain/entity"
	"reliefnet/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// Client is one live feed subscriber.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
	}
}

// Manager fans feed events out to every connected client. Only the Start
// loop touches the client set.
type Manager struct {
	clients    map[*Client]struct{}
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	count      int
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte, sendBuffer),
		done:       make(chan struct{}),
	}
}

func (m *Manager) Start(ctx context.Context) {
	go func() {
		defer close(m.done)

		for {
			select {
			case client := <-m.Register:
				m.clients[client] = struct{}{}
				m.setCount(len(m.clients))
				logger.Debug("feed client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.remove(client)

			case message := <-m.broadcast:
				for client := range m.clients {
					select {
					case client.Send <- message:
					default:
						// Slow consumers are dropped rather than blocking the feed
						logger.Warn("dropping slow feed client: %s", client.UserID)
						m.remove(client)
					}
				}

			case <-ctx.Done():
				for client := range m.clients {
					m.remove(client)
				}
				return
			}
		}
	}()
}

func (m *Manager) remove(client *Client) {
	if _, ok := m.clients[client]; ok {
		delete(m.clients, client)
		close(client.Send)
		m.setCount(len(m.clients))
		logger.Debug("feed client unregistered: %s", client.UserID)
	}
}

func (m *Manager) setCount(n int) {
	m.mutex.Lock()
	m.count = n
	m.mutex.Unlock()
}

// ClientCount is safe to call from any goroutine.
func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.count
}

// Done is closed once the Start loop has exited.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Publish queues event for every client. It never blocks request handlers;
// when the queue is full the event is dropped.
func (m *Manager) Publish(event entity.FeedEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to encode feed event %s: %v", event.Type, err)
		return
	}

	select {
	case m.broadcast <- payload:
	default:
		logger.Warn("feed queue full, dropping event %s", event.Type)
	}
}

// ReadPump only watches for pongs and the close frame; subscribers do not send.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		select {
		case m.Unregister <- c:
		case <-m.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("feed read error for %s: %v", c.UserID, err)
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("feed write error for %s: %v", c.UserID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
