package models

import (
	"time"
)

type Comment struct {
	ID            string    `json:"id" bson:"_id"`
	Video         string    `json:"video" bson:"video"`
	User          string    `json:"user" bson:"user"`
	Text          string    `json:"text" bson:"text" validate:"required,max=500"`
	ParentComment string    `json:"parentComment,omitempty" bson:"parentComment,omitempty"`
	Replies       []string  `json:"replies" bson:"replies"`
	Likes         []Like    `json:"likes" bson:"likes"`
	LikesCount    int       `json:"likesCount" bson:"likesCount"`
	RepliesCount  int       `json:"repliesCount" bson:"repliesCount"`
	Mentions      []string  `json:"mentions" bson:"mentions"`
	IsActive      bool      `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CommentResponse struct {
	ID            string            `json:"id"`
	User          PublicUser        `json:"user"`
	Text          string            `json:"text"`
	ParentComment string            `json:"parentComment,omitempty"`
	LikesCount    int               `json:"likesCount"`
	RepliesCount  int               `json:"repliesCount"`
	IsLiked       bool              `json:"isLiked"`
	Mentions      []string          `json:"mentions"`
	Replies       []CommentResponse `json:"replies,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func (c Comment) IsLikedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, like := range c.Likes {
		if like.User == userID {
			return true
		}
	}
	return false
}

func (c Comment) ToCommentJSON(user PublicUser, currentUserID string) CommentResponse {
	return CommentResponse{
		ID:            c.ID,
		User:          user,
		Text:          c.Text,
		ParentComment: c.ParentComment,
		LikesCount:    c.LikesCount,
		RepliesCount:  c.RepliesCount,
		IsLiked:       c.IsLikedBy(currentUserID),
		Mentions:      c.Mentions,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
