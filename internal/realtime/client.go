package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

var clientIDCounter atomic.Uint64

// Authorizer reports whether the client's user may subscribe to an
// organization's channel.
type Authorizer func(ctx context.Context, orgID uuid.UUID) bool

// Client is a middleman between the websocket connection and the hub
type Client struct {
	id        uint64
	hub       *Hub
	conn      *websocket.Conn
	userID    uuid.UUID
	authorize Authorizer

	// send carries room events and is closed by the hub. reply carries
	// direct answers to this client's own frames and is never closed.
	send  chan Message
	reply chan Message

	// room is owned by the hub goroutine
	room uuid.UUID
}

// NewClient creates a client for an authenticated user
func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, authorize Authorizer) *Client {
	return &Client{
		id:        clientIDCounter.Add(1),
		hub:       hub,
		conn:      conn,
		userID:    userID,
		authorize: authorize,
		send:      make(chan Message, sendBuffer),
		reply:     make(chan Message, 8),
	}
}

// Start begins reading and writing for the client
func (c *Client) Start(ctx context.Context) {
	go c.writePump(ctx)
	go c.readPump(ctx)
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("unexpected websocket close", "client", c.id, "error", err)
			}
			return
		}
		c.handle(ctx, msg)
	}
}

func (c *Client) handle(ctx context.Context, msg Message) {
	switch msg.Type {
	case MessageTypePing:
		c.respond(Message{Type: MessageTypePong})

	case MessageTypeJoin, MessageTypeLeave:
		raw, _ := msg.Data.(string)
		orgID, err := uuid.Parse(raw)
		if err != nil {
			c.respond(Message{Type: MessageTypeError, Data: "invalid organization id"})
			return
		}

		if msg.Type == MessageTypeLeave {
			c.hub.Leave(c, orgID)
			return
		}

		if c.authorize == nil || !c.authorize(ctx, orgID) {
			c.respond(Message{Type: MessageTypeError, Data: "not a member of this organization"})
			return
		}
		c.hub.Join(c, orgID)

	default:
		c.respond(Message{Type: MessageTypeError, Data: "unknown message type"})
	}
}

func (c *Client) respond(msg Message) {
	select {
	case c.reply <- msg:
	default:
	}
}

// admit re-checks membership before a room event is written. A user who
// left the organization after joining its room is moved out of it.
func (c *Client) admit(ctx context.Context, msg Message) bool {
	if c.authorize != nil && c.authorize(ctx, msg.org) {
		return true
	}

	c.hub.Leave(c, msg.org)
	c.respond(Message{Type: MessageTypeError, Data: "no longer a member of this organization"})
	return false
}

func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		var (
			message Message
			ok      bool
		)

		select {
		case message, ok = <-c.send:
			if !ok {
				// The hub closed the channel
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if !c.admit(ctx, message) {
				continue
			}

		case message = <-c.reply:

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		}

		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := c.conn.WriteJSON(message); err != nil {
			return
		}
	}
}

// Upgrader upgrades authenticated requests to websocket connections.
type Upgrader struct {
	upgrader websocket.Upgrader
}

// NewUpgrader accepts connections whose Origin is in allowedOrigins. An
// empty list accepts same-host requests only.
func NewUpgrader(allowedOrigins []string) *Upgrader {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	u := &Upgrader{}
	u.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if len(allowed) > 0 {
		u.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			_, ok := allowed[origin]
			return ok
		}
	}
	return u
}

// Serve upgrades the request and attaches the connection to hub. The
// client lives until the connection closes or the hub stops.
func (u *Upgrader) Serve(hub *Hub, w http.ResponseWriter, r *http.Request, userID uuid.UUID, authorize Authorizer) error {
	conn, err := u.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := NewClient(hub, conn, userID, authorize)
	if !hub.Register(client) {
		_ = conn.Close()
		return ErrHubStopped
	}

	// The request context ends when the handler returns, so the client
	// gets a detached one.
	client.Start(context.WithoutCancel(r.Context()))
	return nil
}
