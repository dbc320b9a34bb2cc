// Package ws implements the room-based notification channel. Clients
// hold one long-lived websocket connection each and join per-task rooms;
// task mutation events are relayed to every member of the task's room.
// Delivery is best effort: no persistence, no replay, no confirmation.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/bodasandeepsai/task-manager/internal/events"
)

// Hub maintains the set of notification rooms and their members.
// A room exists only while it has members; operations on disjoint rooms
// do not interfere beyond the shared mutex.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[uuid.UUID]map[*Client]struct{}
	logger *slog.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		rooms:  make(map[uuid.UUID]map[*Client]struct{}),
		logger: logger.With("component", "notification_hub"),
	}
}

// Ensure Hub can consume task mutation events
var _ events.EventHandler = (*Hub)(nil)

// JoinRoom adds the client to the room for the given task. Idempotent.
func (h *Hub) JoinRoom(c *Client, taskID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[taskID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[taskID] = room
	}
	room[c] = struct{}{}

	h.logger.Debug("client joined room",
		"task_id", taskID,
		"room_size", len(room))
}

// LeaveRoom removes the client from the room for the given task.
// No-op if the client is not a member. Empty rooms are destroyed.
func (h *Hub) LeaveRoom(c *Client, taskID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[taskID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, taskID)
	}

	h.logger.Debug("client left room", "task_id", taskID)
}

// RemoveClient removes the client from every room it belongs to.
func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// closeClient removes the client from every room and closes its send
// channel while holding the write lock. Broadcast sends under the read
// lock, so no send can race the close. Called when a connection closes.
func (h *Hub) closeClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
	close(c.send)
}

// removeLocked deletes the client from all rooms. Caller holds h.mu.
func (h *Hub) removeLocked(c *Client) {
	for taskID, room := range h.rooms {
		if _, ok := room[c]; ok {
			delete(room, c)
			if len(room) == 0 {
				delete(h.rooms, taskID)
			}
		}
	}
}

// RoomSize returns the current number of members in the room for taskID.
func (h *Hub) RoomSize(taskID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[taskID])
}

// Broadcast delivers the message to every member of the room for taskID.
// Clients whose send buffers are full are skipped; there is no delivery
// confirmation and no ordering guarantee across rooms. Sends happen
// under the read lock so a departing client's send channel cannot be
// closed mid-broadcast.
func (h *Hub) Broadcast(taskID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[taskID] {
		select {
		case c.send <- message:
		default:
			h.logger.Warn("dropping event for slow client", "task_id", taskID)
		}
	}
}

// serverMessage is the wire format of server-to-client events.
type serverMessage struct {
	Event  string          `json:"event"`
	TaskID string          `json:"taskId"`
	Task   json.RawMessage `json:"task,omitempty"`
}

// HandleEvent implements events.EventHandler by relaying the task
// mutation into the room keyed by the task's ID. Deletion events carry
// only the task ID; creations and updates carry the task representation.
func (h *Hub) HandleEvent(ctx context.Context, event *events.TaskEvent) error {
	msg := serverMessage{
		Event:  event.Type,
		TaskID: event.TaskID.String(),
	}
	if event.Type != events.TaskDeleted {
		msg.Task = event.Payload
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.Broadcast(event.TaskID, data)
	return nil
}
