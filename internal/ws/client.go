package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size. Join/leave frames are tiny.
	maxMessageSize = 512

	// Outbound buffer per client. When full, events are dropped rather
	// than blocking the broadcaster.
	sendBufferSize = 32
)

// Client events recognised on the inbound side of the connection.
const (
	eventJoinRoom  = "join-task-room"
	eventLeaveRoom = "leave-task-room"
)

// clientMessage is the wire format of client-to-server frames.
type clientMessage struct {
	Event  string `json:"event"`
	TaskID string `json:"taskId"`
}

// Client is one connected websocket session. It belongs to zero or more
// rooms at a time and is removed from all of them on disconnect.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	logger *slog.Logger

	closeOnce sync.Once
}

// newClient wires a connection into the hub.
func newClient(hub *Hub, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: logger,
	}
}

// close tears the client down exactly once: removed from all rooms, send
// channel closed so the write pump exits, connection closed. Room removal
// and the channel close happen together under the hub lock so an
// in-flight broadcast never sends on a closed channel.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.hub.closeClient(c)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// readPump consumes join/leave frames until the connection drops.
// Malformed frames are logged and skipped; the connection stays up.
func (c *Client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket closed unexpectedly", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Debug("ignoring malformed client frame", "error", err)
			continue
		}

		taskID, err := uuid.Parse(msg.TaskID)
		if err != nil {
			c.logger.Debug("ignoring frame with invalid task id",
				"event", msg.Event)
			continue
		}

		switch msg.Event {
		case eventJoinRoom:
			c.hub.JoinRoom(c, taskID)
		case eventLeaveRoom:
			c.hub.LeaveRoom(c, taskID)
		default:
			c.logger.Debug("ignoring unknown client event", "event", msg.Event)
		}
	}
}

// writePump forwards broadcast messages to the peer and keeps the
// connection alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
