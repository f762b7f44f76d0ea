package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dinesuite/dinesuite/models"
)

// Event types
const (
	EventOrderCreate     = "order_create"
	EventOrderUpdate     = "order_update"
	EventTableCreate     = "table_create"
	EventTableUpdate     = "table_update"
	EventTableDelete     = "table_delete"
	EventBookingCreate   = "booking_create"
	EventBookingUpdate   = "booking_update"
	EventStaffNotif      = "staff_notification"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// client identifies a dashboard connection by role and branch so broadcasts
// can be scoped to the branch the event belongs to.
type client struct {
	role     string
	branchID uint
}

// Hub holds every connected dashboard view (waiter, receptionist, manager,
// owner) and fans events out to them.
type Hub struct {
	clients map[*websocket.Conn]client
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]client),
}

// RegisterClient adds a connection to the set. branchID zero means the
// connection receives events for every branch (owners).
func RegisterClient(conn *websocket.Conn, role string, branchID uint) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = client{role: role, branchID: branchID}
}

// UnregisterClient removes and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreate announces a new order to the branch's open views.
func BroadcastOrderCreate(order models.Order) {
	broadcast(order.BranchID, Message{Event: EventOrderCreate, Data: order})
}

func BroadcastOrderUpdate(order models.Order) {
	broadcast(order.BranchID, Message{Event: EventOrderUpdate, Data: order})
}

func BroadcastTableCreate(table models.Table) {
	broadcast(table.BranchID, Message{Event: EventTableCreate, Data: table})
}

func BroadcastTableUpdate(table models.Table) {
	broadcast(table.BranchID, Message{Event: EventTableUpdate, Data: table})
}

func BroadcastTableDelete(branchID, tableID uint) {
	broadcast(branchID, Message{Event: EventTableDelete, Data: map[string]interface{}{
		"table_id": tableID,
	}})
}

func BroadcastBookingCreate(booking models.Booking) {
	broadcast(booking.BranchID, Message{Event: EventBookingCreate, Data: booking})
}

func BroadcastBookingUpdate(booking models.Booking) {
	broadcast(booking.BranchID, Message{Event: EventBookingUpdate, Data: booking})
}

// BroadcastStaffNotification sends a plain text notice to a branch's staff.
func BroadcastStaffNotification(branchID uint, message string) {
	broadcast(branchID, Message{Event: EventStaffNotif, Data: message})
}

// BroadcastMessage sends an arbitrary event to every branch.
func BroadcastMessage(msg Message) {
	broadcast(0, msg)
}

// broadcast sends a message to every client of the branch. branchID zero
// targets all clients.
func broadcast(branchID uint, msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}

	for conn, cl := range hub.clients {
		if branchID != 0 && cl.branchID != 0 && cl.branchID != branchID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending event to %s client: %v", cl.role, err)
		}
	}
}
