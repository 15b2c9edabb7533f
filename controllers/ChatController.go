package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"

	"reelhive/middlewares"
	"reelhive/realtime"
)

type ChatServer struct {
	registry *realtime.Registry
	hub      *realtime.Hub
}

func NewChatServer(registry *realtime.Registry, hub *realtime.Hub) *ChatServer {
	return &ChatServer{registry: registry, hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins, modify as needed for security
	},
}

// clientFrame is what browsers send over the socket: an event name and
// an opaque payload shaped per event.
type clientFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func (s *ChatServer) HandleWS(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Failed to upgrade connection:", err)
		return
	}
	defer conn.Close()

	s.touchLastActive(user.ID)
	s.readLoop(conn, user.ID)

	s.registry.Unregister(user.ID, conn)
	s.touchLastActive(user.ID)
}

func (s *ChatServer) touchLastActive(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := userCollection.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"lastActive": time.Now().UTC()}})
	if err != nil {
		log.Println("Failed to update lastActive:", err)
	}
}

func (s *ChatServer) readLoop(conn *websocket.Conn, userID string) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("Read error:", err)
			}
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			log.Println("Error parsing frame:", err)
			continue
		}
		s.dispatch(conn, userID, frame)
	}
}

func (s *ChatServer) dispatch(conn *websocket.Conn, userID string, frame clientFrame) {
	switch frame.Event {
	case "join":
		// the socket binds to the authenticated user, whatever the
		// client claims in the payload
		s.registry.Register(userID, conn)

	case "typing_start", "typing_stop":
		var payload struct {
			RecipientID string `json:"recipientId"`
		}
		if err := json.Unmarshal(frame.Data, &payload); err != nil || payload.RecipientID == "" {
			return
		}
		s.hub.NotifyUser(payload.RecipientID, realtime.EventUserTyping, gin.H{
			"userId":   userID,
			"isTyping": frame.Event == "typing_start",
		})

	case "new_comment":
		s.relay(conn, realtime.EventCommentAdded, frame.Data)

	case "video_liked":
		s.relay(conn, realtime.EventLikeUpdated, frame.Data)

	case "new_story":
		s.relay(conn, realtime.EventNewStory, frame.Data)

	case "send_notification":
		var payload struct {
			TargetUserID string          `json:"targetUserId"`
			Notification json.RawMessage `json:"notification"`
		}
		if err := json.Unmarshal(frame.Data, &payload); err != nil || payload.TargetUserID == "" {
			return
		}
		s.hub.NotifyUser(payload.TargetUserID, realtime.EventNotification, payload.Notification)
	}
}

// relay rebroadcasts a client-originated event to every other
// connected socket.
func (s *ChatServer) relay(sender *websocket.Conn, event string, data json.RawMessage) {
	s.hub.BroadcastExcept(sender, event, data)
}
