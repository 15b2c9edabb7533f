package models

import (
	"time"
)

const (
	StoryContentPhoto = "photo"
	StoryContentVideo = "video"
	StoryContentText  = "text"

	StoryPrivacyPublic       = "public"
	StoryPrivacyFriends      = "friends"
	StoryPrivacyCloseFriends = "close_friends"

	// StoryLifetime is how long a non-highlight story stays visible.
	StoryLifetime = 24 * time.Hour
)

type StoryView struct {
	UserID   string    `json:"userId" bson:"userId"`
	ViewedAt time.Time `json:"viewedAt" bson:"viewedAt"`
}

type Sticker struct {
	Type     string  `json:"type" bson:"type"`
	URL      string  `json:"url" bson:"url"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Width    float64 `json:"width" bson:"width"`
	Height   float64 `json:"height" bson:"height"`
	Rotation float64 `json:"rotation" bson:"rotation"`
}

type StoryMusic struct {
	Title     string  `json:"title,omitempty" bson:"title,omitempty"`
	Artist    string  `json:"artist,omitempty" bson:"artist,omitempty"`
	URL       string  `json:"url,omitempty" bson:"url,omitempty"`
	StartTime float64 `json:"startTime" bson:"startTime"`
}

type Story struct {
	ID              string      `json:"id" bson:"_id"`
	Creator         string      `json:"creator" bson:"creator"`
	Content         string      `json:"content" bson:"content"`
	MediaURL        string      `json:"mediaUrl" bson:"mediaUrl"`
	Text            string      `json:"text" bson:"text" validate:"max=500"`
	TextColor       string      `json:"textColor" bson:"textColor"`
	BackgroundColor string      `json:"backgroundColor" bson:"backgroundColor"`
	Stickers        []Sticker   `json:"stickers" bson:"stickers"`
	Music           *StoryMusic `json:"music,omitempty" bson:"music,omitempty"`
	ExpiresAt       time.Time   `json:"expiresAt" bson:"expiresAt"`
	Viewers         []StoryView `json:"viewers" bson:"viewers"`
	ViewsCount      int         `json:"viewsCount" bson:"viewsCount"`
	Privacy         string      `json:"privacy" bson:"privacy"`
	IsHighlight     bool        `json:"isHighlight" bson:"isHighlight"`
	HighlightTitle  string      `json:"highlightTitle" bson:"highlightTitle"`
	Reactions       []Reaction  `json:"reactions" bson:"reactions"`
	IsDeleted       bool        `json:"isDeleted" bson:"isDeleted"`
	CreatedAt       time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// IsExpired reports whether the story has aged out. Highlights never
// expire.
func (s Story) IsExpired(now time.Time) bool {
	return !s.IsHighlight && now.After(s.ExpiresAt)
}

// ViewedBy reports whether userID is already in the viewer set.
func (s Story) ViewedBy(userID string) bool {
	for _, v := range s.Viewers {
		if v.UserID == userID {
			return true
		}
	}
	return false
}

// AddViewer records a view once per distinct viewer and keeps
// viewsCount equal to the viewer set size.
func (s *Story) AddViewer(userID string, now time.Time) bool {
	if s.ViewedBy(userID) {
		return false
	}
	s.Viewers = append(s.Viewers, StoryView{UserID: userID, ViewedAt: now})
	s.ViewsCount = len(s.Viewers)
	return true
}
