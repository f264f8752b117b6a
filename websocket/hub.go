package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

type event struct {
	UserID  uuid.UUID
	Payload interface{}
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var events = make(chan event, 64)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case ev := <-events:
			clientsMu.RLock()
			conn, ok := clients[ev.UserID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(ev.Payload); err != nil {
				log.Printf("Error sending event to client %s: %v", ev.UserID, err)
				conn.Close()
				clientsMu.Lock()
				delete(clients, ev.UserID)
				clientsMu.Unlock()
			}
		}
	}
}

// Hub satisfies the services.EventPublisher interface. Events for users
// without an open connection are dropped; the email notification covers them.
type Hub struct{}

func (Hub) Publish(userID uuid.UUID, payload interface{}) {
	select {
	case events <- event{UserID: userID, Payload: payload}:
	default:
		log.Printf("⚠️ Event channel full, dropping event for user %s", userID)
	}
}
