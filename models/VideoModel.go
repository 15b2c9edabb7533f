package models

import (
	"time"
)

type Like struct {
	User      string    `json:"user" bson:"user"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Music struct {
	Title    string  `json:"title,omitempty" bson:"title,omitempty"`
	Artist   string  `json:"artist,omitempty" bson:"artist,omitempty"`
	URL      string  `json:"url,omitempty" bson:"url,omitempty"`
	Duration float64 `json:"duration,omitempty" bson:"duration,omitempty"`
}

type Video struct {
	ID            string    `json:"id" bson:"_id"`
	User          string    `json:"user" bson:"user"`
	Caption       string    `json:"caption" bson:"caption" validate:"max=500"`
	VideoURL      string    `json:"videoUrl" bson:"videoUrl"`
	ThumbnailURL  string    `json:"thumbnailUrl" bson:"thumbnailUrl"`
	Duration      float64   `json:"duration" bson:"duration"`
	Likes         []Like    `json:"likes" bson:"likes"`
	LikesCount    int       `json:"likesCount" bson:"likesCount"`
	CommentsCount int       `json:"commentsCount" bson:"commentsCount"`
	SharesCount   int       `json:"sharesCount" bson:"sharesCount"`
	ViewsCount    int       `json:"viewsCount" bson:"viewsCount"`
	Hashtags      []string  `json:"hashtags" bson:"hashtags"`
	Mentions      []string  `json:"mentions" bson:"mentions"`
	Music         *Music    `json:"music,omitempty" bson:"music,omitempty"`
	IsPrivate     bool      `json:"isPrivate" bson:"isPrivate"`
	AllowComments bool      `json:"allowComments" bson:"allowComments"`
	AllowDownload bool      `json:"allowDownload" bson:"allowDownload"`
	AllowDuet     bool      `json:"allowDuet" bson:"allowDuet"`
	IsActive      bool      `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// VideoResponse is a Video shaped for the API, with the per-viewer
// isLiked flag resolved and the raw like set hidden.
type VideoResponse struct {
	ID            string     `json:"id"`
	User          PublicUser `json:"user"`
	Caption       string     `json:"caption"`
	VideoURL      string     `json:"videoUrl"`
	ThumbnailURL  string     `json:"thumbnailUrl"`
	Duration      float64    `json:"duration"`
	LikesCount    int        `json:"likesCount"`
	CommentsCount int        `json:"commentsCount"`
	SharesCount   int        `json:"sharesCount"`
	ViewsCount    int        `json:"viewsCount"`
	Hashtags      []string   `json:"hashtags"`
	Mentions      []string   `json:"mentions"`
	Music         *Music     `json:"music,omitempty"`
	IsLiked       bool       `json:"isLiked"`
	AllowComments bool       `json:"allowComments"`
	AllowDownload bool       `json:"allowDownload"`
	AllowDuet     bool       `json:"allowDuet"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (v Video) IsLikedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, like := range v.Likes {
		if like.User == userID {
			return true
		}
	}
	return false
}

func (v Video) ToVideoJSON(user PublicUser, currentUserID string) VideoResponse {
	return VideoResponse{
		ID:            v.ID,
		User:          user,
		Caption:       v.Caption,
		VideoURL:      v.VideoURL,
		ThumbnailURL:  v.ThumbnailURL,
		Duration:      v.Duration,
		LikesCount:    v.LikesCount,
		CommentsCount: v.CommentsCount,
		SharesCount:   v.SharesCount,
		ViewsCount:    v.ViewsCount,
		Hashtags:      v.Hashtags,
		Mentions:      v.Mentions,
		Music:         v.Music,
		IsLiked:       v.IsLikedBy(currentUserID),
		AllowComments: v.AllowComments,
		AllowDownload: v.AllowDownload,
		AllowDuet:     v.AllowDuet,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}
