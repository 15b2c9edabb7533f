package realtime

import (
	"log"
	"sync"
)

// Server-to-client event names.
const (
	EventCommentAdded    = "comment_added"
	EventLikeUpdated     = "like_updated"
	EventNewFollower     = "new_follower"
	EventNewMessage      = "new_message"
	EventMessageReaction = "message_reaction"
	EventMessageDeleted  = "message_deleted"
	EventUserTyping      = "user_typing"
	EventNewStory        = "new_story"
	EventStoryViewed     = "story_viewed"
	EventStoryReaction   = "story_reaction"
	EventNotification    = "notification"
)

// Frame is the wire shape of every pushed event.
type Frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub pushes domain events to live connections resolved through the
// Registry. Delivery is at most once: a target without a connection is
// skipped, a failed write drops the connection. Nothing is queued and
// nothing is reported back to the caller; the store stays the durable
// source of truth. Dispatch is serialized under one mutex, so events
// for the same target go out in the order the Notify calls were made.
type Hub struct {
	registry *Registry
	mut      sync.Mutex
}

func NewHub(registry *Registry) *Hub {
	return &Hub{registry: registry}
}

// NotifyUser pushes one event to a single user, if connected.
func (h *Hub) NotifyUser(userID string, event string, data interface{}) {
	h.mut.Lock()
	defer h.mut.Unlock()

	conn, ok := h.registry.Resolve(userID)
	if !ok {
		return
	}
	h.push(userID, conn, event, data)
}

// NotifyUsers pushes one event to every listed user that is connected.
func (h *Hub) NotifyUsers(userIDs []string, event string, data interface{}) {
	h.mut.Lock()
	defer h.mut.Unlock()

	for _, userID := range userIDs {
		conn, ok := h.registry.Resolve(userID)
		if !ok {
			continue
		}
		h.push(userID, conn, event, data)
	}
}

// Broadcast pushes one event to every connected client.
func (h *Hub) Broadcast(event string, data interface{}) {
	h.BroadcastExcept(nil, event, data)
}

// BroadcastExcept pushes to every connected client except the given
// originating connection.
func (h *Hub) BroadcastExcept(except Conn, event string, data interface{}) {
	h.mut.Lock()
	defer h.mut.Unlock()

	for userID, conn := range h.registry.snapshot() {
		if except != nil && conn == except {
			continue
		}
		h.push(userID, conn, event, data)
	}
}

func (h *Hub) push(userID string, conn Conn, event string, data interface{}) {
	if err := conn.WriteJSON(Frame{Event: event, Data: data}); err != nil {
		log.Printf("realtime: dropping connection for %s: %v", userID, err)
		h.registry.Unregister(userID, conn)
	}
}
