package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reelhive/database"
	"reelhive/helper"
	"reelhive/middlewares"
	"reelhive/models"
	"reelhive/realtime"
	"reelhive/services"
)

var msgCollection *mongo.Collection = database.OpenCollection(database.Client, "message-collection")

type MessageController struct {
	hub *realtime.Hub
}

func NewMessageController(hub *realtime.Hub) *MessageController {
	return &MessageController{hub: hub}
}

// purgeExpired removes disappearing messages that have passed their
// deadline. Called opportunistically on reads, no background job.
func purgeExpired(ctx context.Context) {
	msgCollection.DeleteMany(ctx, bson.M{
		"expiresAt": bson.M{"$ne": nil, "$lte": time.Now().UTC()},
	})
}

func (mc *MessageController) GetConversations(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	purgeExpired(ctx)

	cursor, err := msgCollection.Find(ctx, bson.M{
		"$or": []bson.M{{"sender": user.ID}, {"recipient": user.ID}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching conversations"})
		return
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching conversations"})
		return
	}

	now := time.Now().UTC()
	summaries := services.AggregateConversations(messages, user.ID, now)
	counterpartIDs := lo.Map(summaries, func(s services.ConversationSummary, _ int) string { return s.UserID })
	counterparts, err := helper.GetPublicUsers(counterpartIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching conversations"})
		return
	}

	// one batch query for every counterpart's live stories, grouped in
	// memory, instead of a query per conversation row
	storiesByCreator := make(map[string][]models.Story)
	storyFilter := services.LiveStoryFilter(now)
	storyFilter["creator"] = bson.M{"$in": counterpartIDs}
	if storyCursor, serr := storyCollection.Find(ctx, storyFilter); serr == nil {
		var stories []models.Story
		if storyCursor.All(ctx, &stories) == nil {
			for _, story := range stories {
				storiesByCreator[story.Creator] = append(storiesByCreator[story.Creator], story)
			}
		}
	}

	conversations := make([]gin.H, 0, len(summaries))
	for _, summary := range summaries {
		conversations = append(conversations, gin.H{
			"user":        counterparts[summary.UserID],
			"lastMessage": summary.LastMessage.PreviewText(),
			"timestamp":   summary.LastMessage.CreatedAt,
			"unreadCount": summary.UnreadCount,
			"hasStory":    services.HasUnviewedStory(storiesByCreator[summary.UserID], user.ID, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

func (mc *MessageController) GetConversation(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	otherID := c.Param("user_id")
	_, limit, skip := pageParams(c, 50)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := helper.GetUserById(otherID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	purgeExpired(ctx)

	cursor, err := msgCollection.Find(ctx, bson.M{
		"$or": []bson.M{
			{"sender": user.ID, "recipient": otherID},
			{"sender": otherID, "recipient": user.ID},
		},
		"isDeleted":  false,
		"deletedFor": bson.M{"$ne": user.ID},
	}, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching messages"})
		return
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching messages"})
		return
	}
	messages = lo.Reverse(messages)

	// everything addressed to the viewer is now read
	_, err = msgCollection.UpdateMany(ctx, bson.M{
		"sender": otherID, "recipient": user.ID, "isRead": false,
	}, bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"hasMore":  len(messages) == limit,
	})
}

func (mc *MessageController) SendMessage(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	var body struct {
		RecipientID string `json:"recipientId"`
		Text        string `json:"text"`
		StoryReply  *struct {
			StoryID string `json:"storyId"`
		} `json:"storyReply"`
		ReplyTo   string `json:"replyTo"`
		ExpiresIn int64  `json:"expiresIn"` // seconds; 0 means the message never expires
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.RecipientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient is required"})
		return
	}
	if body.Text == "" && body.StoryReply == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := helper.GetUserById(body.RecipientID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		return
	}

	message := models.Message{
		ID:          uuid.New().String(),
		Sender:      user.ID,
		Recipient:   body.RecipientID,
		Text:        body.Text,
		MessageType: models.MessageTypeText,
		ReplyTo:     body.ReplyTo,
		Reactions:   []models.Reaction{},
		DeletedFor:  []string{},
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if body.ExpiresIn > 0 {
		deadline := time.Now().UTC().Add(time.Duration(body.ExpiresIn) * time.Second)
		message.ExpiresAt = &deadline
	}

	if body.StoryReply != nil {
		var story models.Story
		err := storyCollection.FindOne(ctx, bson.M{
			"_id": body.StoryReply.StoryID, "isDeleted": false,
		}).Decode(&story)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
			return
		}
		message.MessageType = models.MessageTypeStoryReply
		message.StoryReply = &models.StoryReply{
			StoryID:  story.ID,
			MediaURL: story.MediaURL,
			Text:     story.Text,
		}
	}

	if _, err := msgCollection.InsertOne(ctx, message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error sending message"})
		return
	}

	mc.hub.NotifyUser(body.RecipientID, realtime.EventNewMessage, gin.H{
		"message": message,
		"sender":  user.ToPublicUser(),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent",
		"data":    message,
	})
}

func (mc *MessageController) SendMediaMessage(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	recipientID := c.PostForm("recipientId")
	if recipientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient is required"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Media files are required"})
		return
	}
	files := form.File["media"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Media files are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := helper.GetUserById(recipientID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		return
	}

	var mediaItems []models.Media
	for _, file := range files {
		if err := helper.ValidateMediaUpload(file, helper.MaxMediaSize); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		url, uerr := helper.UploadToGridFS(file)
		if uerr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error uploading media"})
			return
		}
		mediaItems = append(mediaItems, models.Media{
			URL:  url,
			Type: helper.MediaTypeOf(file),
		})
	}

	message := models.Message{
		ID:         uuid.New().String(),
		Sender:     user.ID,
		Recipient:  recipientID,
		Text:       c.PostForm("text"),
		Reactions:  []models.Reaction{},
		DeletedFor: []string{},
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if len(mediaItems) == 1 {
		message.MessageType = mediaItems[0].Type
		message.Media = &mediaItems[0]
	} else {
		message.MessageType = models.MessageTypeMediaGroup
		message.MediaGroup = mediaItems
	}
	if expiresIn, _ := strconv.ParseInt(c.PostForm("expiresIn"), 10, 64); expiresIn > 0 {
		deadline := time.Now().UTC().Add(time.Duration(expiresIn) * time.Second)
		message.ExpiresAt = &deadline
	}

	if _, err := msgCollection.InsertOne(ctx, message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error sending message"})
		return
	}

	mc.hub.NotifyUser(recipientID, realtime.EventNewMessage, gin.H{
		"message": message,
		"sender":  user.ToPublicUser(),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent",
		"data":    message,
	})
}

func (mc *MessageController) ReactToMessage(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	messageID := c.Param("message_id")

	var body struct {
		Emoji string `json:"emoji"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Emoji == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Emoji is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var message models.Message
	err := msgCollection.FindOne(ctx, bson.M{"_id": messageID, "isDeleted": false}).Decode(&message)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	if message.Sender != user.ID && message.Recipient != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not part of this conversation"})
		return
	}

	// one reaction per user, latest wins
	message.Reactions = lo.Filter(message.Reactions, func(r models.Reaction, _ int) bool {
		return r.UserID != user.ID
	})
	message.Reactions = append(message.Reactions, models.Reaction{
		UserID:    user.ID,
		Emoji:     body.Emoji,
		CreatedAt: time.Now().UTC(),
	})

	_, err = msgCollection.UpdateOne(ctx, bson.M{"_id": message.ID},
		bson.M{"$set": bson.M{"reactions": message.Reactions}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error reacting to message"})
		return
	}

	mc.hub.NotifyUser(message.CounterpartOf(user.ID), realtime.EventMessageReaction, gin.H{
		"messageId": message.ID,
		"reactions": message.Reactions,
	})

	c.JSON(http.StatusOK, gin.H{"reactions": message.Reactions})
}

func (mc *MessageController) EditMessage(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	messageID := c.Param("message_id")

	var body struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var message models.Message
	err := msgCollection.FindOne(ctx, bson.M{
		"_id": messageID, "sender": user.ID, "isDeleted": false,
	}).Decode(&message)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found or unauthorized"})
		return
	}

	message.EditHistory = append(message.EditHistory, models.EditEntry{
		Text:     message.Text,
		EditedAt: time.Now().UTC(),
	})
	message.Text = body.Text
	message.IsEdited = true
	message.UpdatedAt = time.Now().UTC()

	_, err = msgCollection.UpdateOne(ctx, bson.M{"_id": message.ID}, bson.M{"$set": bson.M{
		"text":        message.Text,
		"isEdited":    true,
		"editHistory": message.EditHistory,
		"updatedAt":   message.UpdatedAt,
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error editing message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": message})
}

func (mc *MessageController) DeleteMessage(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	messageID := c.Param("message_id")

	var body struct {
		DeleteFor string `json:"deleteFor"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		body.DeleteFor = "me"
	}
	if body.DeleteFor == "" {
		body.DeleteFor = "me"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var message models.Message
	err := msgCollection.FindOne(ctx, bson.M{"_id": messageID}).Decode(&message)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	if message.Sender != user.ID && message.Recipient != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not part of this conversation"})
		return
	}

	switch body.DeleteFor {
	case "everyone":
		if message.Sender != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the sender can delete for everyone"})
			return
		}
		_, err = msgCollection.UpdateOne(ctx, bson.M{"_id": message.ID},
			bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now().UTC()}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting message"})
			return
		}
		mc.hub.NotifyUser(message.CounterpartOf(user.ID), realtime.EventMessageDeleted, gin.H{
			"messageId": message.ID,
		})
	case "me":
		_, err = msgCollection.UpdateOne(ctx, bson.M{"_id": message.ID},
			bson.M{"$addToSet": bson.M{"deletedFor": user.ID}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting message"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "deleteFor must be 'me' or 'everyone'"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
