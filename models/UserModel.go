package models

import (
	"time"
)

type User struct {
	ID              string    `json:"id" bson:"_id"`
	Username        string    `json:"username" bson:"username" validate:"required,min=3,max=30"`
	Email           string    `json:"email" bson:"email" validate:"required,email"`
	Password        string    `json:"password,omitempty" bson:"password" validate:"required,min=6"`
	DisplayName     string    `json:"displayName" bson:"displayName" validate:"required,max=50"`
	Bio             string    `json:"bio" bson:"bio" validate:"max=200"`
	ProfilePicture  string    `json:"profilePicture" bson:"profilePicture"`
	CoverImage      string    `json:"coverImage" bson:"coverImage"`
	ThemePreference string    `json:"themePreference" bson:"themePreference"`
	Followers       []string  `json:"followers" bson:"followers"`
	Following       []string  `json:"following" bson:"following"`
	FollowersCount  int       `json:"followersCount" bson:"followersCount"`
	FollowingCount  int       `json:"followingCount" bson:"followingCount"`
	LikesCount      int       `json:"likesCount" bson:"likesCount"`
	VideosCount     int       `json:"videosCount" bson:"videosCount"`
	IsVerified      bool      `json:"isVerified" bson:"isVerified"`
	IsPrivate       bool      `json:"isPrivate" bson:"isPrivate"`
	LastActive      time.Time `json:"lastActive" bson:"lastActive"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

// PublicUser is the slimmed-down profile embedded in feed items,
// conversations and story groups.
type PublicUser struct {
	ID             string `json:"id" bson:"_id"`
	Username       string `json:"username" bson:"username"`
	DisplayName    string `json:"displayName" bson:"displayName"`
	ProfilePicture string `json:"profilePicture" bson:"profilePicture"`
	IsVerified     bool   `json:"isVerified" bson:"isVerified"`
}

type Profile struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	DisplayName     string    `json:"displayName"`
	Bio             string    `json:"bio"`
	ProfilePicture  string    `json:"profilePicture"`
	CoverImage      string    `json:"coverImage"`
	ThemePreference string    `json:"themePreference"`
	FollowersCount  int       `json:"followersCount"`
	FollowingCount  int       `json:"followingCount"`
	LikesCount      int       `json:"likesCount"`
	VideosCount     int       `json:"videosCount"`
	IsVerified      bool      `json:"isVerified"`
	IsPrivate       bool      `json:"isPrivate"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (u User) ToProfileJSON() Profile {
	return Profile{
		ID:              u.ID,
		Username:        u.Username,
		DisplayName:     u.DisplayName,
		Bio:             u.Bio,
		ProfilePicture:  u.ProfilePicture,
		CoverImage:      u.CoverImage,
		ThemePreference: u.ThemePreference,
		FollowersCount:  u.FollowersCount,
		FollowingCount:  u.FollowingCount,
		LikesCount:      u.LikesCount,
		VideosCount:     u.VideosCount,
		IsVerified:      u.IsVerified,
		IsPrivate:       u.IsPrivate,
		CreatedAt:       u.CreatedAt,
	}
}

func (u User) ToPublicUser() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		ProfilePicture: u.ProfilePicture,
		IsVerified:     u.IsVerified,
	}
}

func (u User) IsFollowing(userID string) bool {
	for _, id := range u.Following {
		if id == userID {
			return true
		}
	}
	return false
}
