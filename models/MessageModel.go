package models

import (
	"time"
)

const (
	MessageTypeText       = "text"
	MessageTypeImage      = "image"
	MessageTypeVideo      = "video"
	MessageTypeAudio      = "audio"
	MessageTypeStoryReply = "story_reply"
	MessageTypeMediaGroup = "media_group"
)

type Media struct {
	URL      string  `json:"url" bson:"url"`
	Type     string  `json:"type" bson:"type"`
	FileName string  `json:"fileName,omitempty" bson:"fileName,omitempty"`
	Size     int64   `json:"size,omitempty" bson:"size,omitempty"`
	Duration float64 `json:"duration,omitempty" bson:"duration,omitempty"`
}

type StoryReply struct {
	StoryID  string `json:"storyId" bson:"storyId"`
	MediaURL string `json:"mediaUrl,omitempty" bson:"mediaUrl,omitempty"`
	Text     string `json:"text,omitempty" bson:"text,omitempty"`
}

type Reaction struct {
	UserID    string    `json:"userId" bson:"userId"`
	Emoji     string    `json:"emoji" bson:"emoji"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type EditEntry struct {
	Text     string    `json:"text" bson:"text"`
	EditedAt time.Time `json:"editedAt" bson:"editedAt"`
}

type Message struct {
	ID          string      `json:"id" bson:"_id"`
	Sender      string      `json:"sender" bson:"sender"`
	Recipient   string      `json:"recipient" bson:"recipient"`
	Text        string      `json:"text" bson:"text"`
	MessageType string      `json:"messageType" bson:"messageType"`
	Media       *Media      `json:"media,omitempty" bson:"media,omitempty"`
	MediaGroup  []Media     `json:"mediaGroup,omitempty" bson:"mediaGroup,omitempty"`
	StoryReply  *StoryReply `json:"storyReply,omitempty" bson:"storyReply,omitempty"`
	ReplyTo     string      `json:"replyTo,omitempty" bson:"replyTo,omitempty"`
	Reactions   []Reaction  `json:"reactions" bson:"reactions"`
	IsRead      bool        `json:"isRead" bson:"isRead"`
	IsEdited    bool        `json:"isEdited" bson:"isEdited"`
	EditHistory []EditEntry `json:"editHistory,omitempty" bson:"editHistory,omitempty"`
	IsDeleted   bool        `json:"isDeleted" bson:"isDeleted"`
	DeletedFor  []string    `json:"deletedFor" bson:"deletedFor"`
	ExpiresAt   *time.Time  `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// VisibleTo reports whether viewer should still see this message:
// globally deleted messages and messages the viewer removed for
// themselves are hidden for everyone / for that viewer respectively.
func (m Message) VisibleTo(viewerID string) bool {
	if m.IsDeleted {
		return false
	}
	for _, id := range m.DeletedFor {
		if id == viewerID {
			return false
		}
	}
	return true
}

// IsExpired reports whether a disappearing message has passed its
// deadline. Messages without a deadline never expire.
func (m Message) IsExpired(now time.Time) bool {
	return m.ExpiresAt != nil && now.After(*m.ExpiresAt)
}

// CounterpartOf returns the other side of the conversation edge.
func (m Message) CounterpartOf(viewerID string) string {
	if m.Sender == viewerID {
		return m.Recipient
	}
	return m.Sender
}

// PreviewText renders the one-line conversation preview: the literal
// text when present, otherwise a fixed label keyed on the message type.
func (m Message) PreviewText() string {
	if m.Text != "" {
		return m.Text
	}
	switch m.MessageType {
	case MessageTypeImage:
		return "📷 Photo"
	case MessageTypeVideo:
		return "🎥 Video"
	case MessageTypeAudio:
		return "🎵 Voice message"
	case MessageTypeStoryReply:
		return "Replied to a story"
	case MessageTypeMediaGroup:
		return "🖼️ Album"
	default:
		return ""
	}
}
