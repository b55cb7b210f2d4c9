package services

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// DashboardEvent is a message pushed to connected dashboard clients
type DashboardEvent struct {
	Type    string      `json:"type"`
	UserID  string      `json:"userId,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// wsClient represents one connected dashboard session
type wsClient struct {
	userID string
	conn   *websocket.Conn
	send   chan DashboardEvent
	hub    *wsHub
}

// wsHub maintains the set of active clients and fans events out to them
type wsHub struct {
	clients    map[*wsClient]bool
	users      map[string]map[*wsClient]bool
	broadcast  chan DashboardEvent
	register   chan *wsClient
	unregister chan *wsClient
	mutex      sync.RWMutex
}

// WebSocketService pushes dashboard events (stock alerts, sync results)
// to connected users
type WebSocketService struct {
	hub         *wsHub
	upgrader    websocket.Upgrader
	authService *AuthService
}

// NewWebSocketService creates a new websocket service and starts its hub
func NewWebSocketService(authService *AuthService) *WebSocketService {
	hub := &wsHub{
		clients:    make(map[*wsClient]bool),
		users:      make(map[string]map[*wsClient]bool),
		broadcast:  make(chan DashboardEvent, 64),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
	}

	service := &WebSocketService{
		hub:         hub,
		authService: authService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// CORS policy is enforced at the router level
				return true
			},
		},
	}

	go hub.run()
	return service
}

func (h *wsHub) run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			if h.users[client.userID] == nil {
				h.users[client.userID] = make(map[*wsClient]bool)
			}
			h.users[client.userID][client] = true
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				delete(h.users[client.userID], client)
				if len(h.users[client.userID]) == 0 {
					delete(h.users, client.userID)
				}
				close(client.send)
			}
			h.mutex.Unlock()

		case event := <-h.broadcast:
			h.mutex.RLock()
			targets := make([]*wsClient, 0)
			if event.UserID != "" {
				for client := range h.users[event.UserID] {
					targets = append(targets, client)
				}
			} else {
				for client := range h.clients {
					targets = append(targets, client)
				}
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- event:
				default:
					// Slow consumer; drop the connection rather than block the hub
					h.mutex.Lock()
					delete(h.clients, client)
					delete(h.users[client.userID], client)
					close(client.send)
					h.mutex.Unlock()
				}
			}
		}
	}
}

// HandleWebSocket upgrades the connection. The token travels as a query
// parameter because browsers cannot set headers on websocket dials.
func (s *WebSocketService) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	claims, err := s.authService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Invalid token",
		})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &wsClient{
		userID: claims.UserID,
		conn:   conn,
		send:   make(chan DashboardEvent, 16),
		hub:    s.hub,
	}
	s.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// NotifyUser pushes an event to every session of one user
func (s *WebSocketService) NotifyUser(userID string, eventType, message string, data interface{}) {
	s.hub.broadcast <- DashboardEvent{
		Type:    eventType,
		UserID:  userID,
		Message: message,
		Data:    data,
	}
}

// ConnectedUsers returns the number of distinct users with live sessions
func (s *WebSocketService) ConnectedUsers() int {
	s.hub.mutex.RLock()
	defer s.hub.mutex.RUnlock()
	return len(s.hub.users)
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
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
				return
			}
		case <-ticker.C:
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

	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Dashboard clients are receive-only; drain and discard
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
