// Package realtime pushes organization events to connected websocket
// clients. Delivery is at-most-once: there is no replay, and a client whose
// buffer is full is dropped.
package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dangerclosesec/apmap/internal/metrics"
	"github.com/google/uuid"
)

//go:generate mockgen -source=./hub.go -destination=../mocks/mock_broadcaster.go -package=mocks Broadcaster

// Event names sent to clients.
const (
	EventNewAccessPoint    = "new-access-point"
	EventSpeedTestStart    = "speed-test-start"
	EventSpeedTestComplete = "speed-test-complete"

	MessageTypeJoin  = "join-organization"
	MessageTypeLeave = "leave-organization"
	MessageTypePing  = "ping"
	MessageTypePong  = "pong"
	MessageTypeError = "error"
)

// ErrHubStopped is returned by Publish after the hub's Run has returned.
var ErrHubStopped = errors.New("realtime hub stopped")

// Message is the websocket frame exchanged with clients
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`

	// org is the room a delivered event was published to
	org uuid.UUID
}

// Broadcaster publishes an event to every subscriber of an organization's
// channel.
type Broadcaster interface {
	Publish(ctx context.Context, orgID uuid.UUID, event string, payload interface{}) error
}

type membership struct {
	client *Client
	orgID  uuid.UUID
}

type roomMessage struct {
	orgID uuid.UUID
	msg   Message
}

// Hub owns the client set and the organization rooms. Only the Run
// goroutine touches the maps.
type Hub struct {
	clients map[*Client]struct{}
	rooms   map[uuid.UUID]map[*Client]struct{}

	broadcast  chan roomMessage
	register   chan *Client
	unregister chan *Client
	join       chan membership
	leave      chan membership

	done     chan struct{}
	stopOnce sync.Once
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[uuid.UUID]map[*Client]struct{}),
		broadcast:  make(chan roomMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan membership),
		leave:      make(chan membership),
		done:       make(chan struct{}),
	}
}

// Run processes hub events until ctx is canceled, then disconnects every
// client.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			metrics.RealtimeClients.Set(float64(len(h.clients)))
			slog.Debug("websocket client connected", "client", client.id, "user", client.userID)

		case client := <-h.unregister:
			h.remove(client)

		case m := <-h.join:
			if _, ok := h.clients[m.client]; !ok {
				continue
			}
			// A client sits in at most one room.
			h.leaveRoom(m.client)
			room, ok := h.rooms[m.orgID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[m.orgID] = room
			}
			room[m.client] = struct{}{}
			m.client.room = m.orgID

		case m := <-h.leave:
			if m.client.room == m.orgID {
				h.leaveRoom(m.client)
			}

		case rm := <-h.broadcast:
			for client := range h.rooms[rm.orgID] {
				select {
				case client.send <- rm.msg:
				default:
					metrics.RealtimeEventsDropped.Inc()
					slog.Warn("websocket client too slow, disconnecting", "client", client.id)
					h.remove(client)
				}
			}
		}
	}
}

// Publish implements Broadcaster for this process's clients.
func (h *Hub) Publish(ctx context.Context, orgID uuid.UUID, event string, payload interface{}) error {
	// broadcast is buffered and stays ready after Run returns
	if h.stopped() {
		return ErrHubStopped
	}

	select {
	case h.broadcast <- roomMessage{orgID: orgID, msg: Message{Type: event, Data: payload}}:
		metrics.RealtimeEventsPublished.WithLabelValues(event).Inc()
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Register adds a client. It blocks until the hub accepts it.
func (h *Hub) Register(client *Client) bool {
	if h.stopped() {
		return false
	}

	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Join(client *Client, orgID uuid.UUID) {
	select {
	case h.join <- membership{client: client, orgID: orgID}:
	case <-h.done:
	}
}

func (h *Hub) Leave(client *Client, orgID uuid.UUID) {
	select {
	case h.leave <- membership{client: client, orgID: orgID}:
	case <-h.done:
	}
}

func (h *Hub) stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	h.leaveRoom(client)
	delete(h.clients, client)
	close(client.send)
	metrics.RealtimeClients.Set(float64(len(h.clients)))
	slog.Debug("websocket client disconnected", "client", client.id)
}

func (h *Hub) leaveRoom(client *Client) {
	if client.room == uuid.Nil {
		return
	}
	if room, ok := h.rooms[client.room]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, client.room)
		}
	}
	client.room = uuid.Nil
}

func (h *Hub) shutdown() {
	h.stopOnce.Do(func() {
		close(h.done)
		for client := range h.clients {
			h.remove(client)
		}
	})
}
