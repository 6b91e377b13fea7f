package services

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// FeedEvent is a message pushed over the admin websocket feed
type FeedEvent struct {
	Type    string      `json:"type"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// feedClient is one connected admin dashboard
type feedClient struct {
	conn *websocket.Conn
	send chan FeedEvent
	hub  *feedHub
}

// feedHub maintains the set of connected clients and fans events out
type feedHub struct {
	clients    map[*feedClient]bool
	broadcast  chan FeedEvent
	register   chan *feedClient
	unregister chan *feedClient
	mutex      sync.RWMutex
}

// FeedService pushes back-office events (new and updated orders) to
// connected admin dashboards over websocket.
type FeedService struct {
	hub      *feedHub
	upgrader websocket.Upgrader
}

// NewFeedService creates the feed service and starts its hub
func NewFeedService(checkOrigin func(r *http.Request) bool) *FeedService {
	hub := &feedHub{
		clients:    make(map[*feedClient]bool),
		broadcast:  make(chan FeedEvent, 64),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
	}

	service := &FeedService{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: checkOrigin,
		},
	}

	go hub.run()

	return service
}

// HandleWebSocket upgrades the connection and registers the client.
// Auth has already happened in middleware by the time this runs.
func (s *FeedService) HandleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &feedClient{
		conn: conn,
		send: make(chan FeedEvent, 64),
		hub:  s.hub,
	}

	s.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// Publish broadcasts an event to every connected client. Never blocks
// the caller: if the hub's buffer is full the event is dropped.
func (s *FeedService) Publish(eventType string, data interface{}) {
	select {
	case s.hub.broadcast <- FeedEvent{Type: eventType, Data: data}:
	default:
		log.Printf("Warning: feed buffer full, dropping %s event", eventType)
	}
}

func (h *feedHub) run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()

			select {
			case client.send <- FeedEvent{Type: "connected", Message: "Connected to order feed"}:
			default:
			}

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()

		case event := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.send <- event:
				default:
					// Slow client, drop the event rather than stall the hub
				}
			}
			h.mutex.RUnlock()
		}
	}
}

func (c *feedClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	// The feed is one-way; clients only send pings and close frames
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

func (c *feedClient) writePump() {
	ticker := time.NewTicker(45 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
