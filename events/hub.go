package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/spokefoods/spoke-backend/models"
)

// Event types pushed to connected dashboards.
const (
	EventOrderCreated = "order_created"
	EventOrderUpdate  = "order_update"
	EventChefUpdate   = "chef_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every live websocket client (admin dashboards, chef consoles)
// and fans events out to them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> scope
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its auth scope.
func RegisterClient(conn *websocket.Conn, scope string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = scope
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreated announces a freshly checked-out order.
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{Event: EventOrderCreated, Data: order})
}

// BroadcastOrderUpdate announces an order status transition.
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastChefUpdate announces a chef load or roster change.
func BroadcastChefUpdate(chef models.Chef) {
	broadcast(Message{Event: EventChefUpdate, Data: chef})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending event to client: %v", err)
		}
	}
}
