package controllers

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reelhive/helper"
	"reelhive/middlewares"
	"reelhive/models"
	"reelhive/realtime"
	"reelhive/services"
)

var validThemes = map[string]bool{
	"darkClassic": true, "lightClassic": true, "darkNeon": true,
	"lightPastel": true, "darkPurple": true, "lightGreen": true,
	"darkOrange": true, "lightBlue": true,
}

type UserController struct {
	hub *realtime.Hub
}

func NewUserController(hub *realtime.Hub) *UserController {
	return &UserController{hub: hub}
}

func pageParams(c *gin.Context, defaultLimit int) (page, limit, skip int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}

func (uc *UserController) GetProfile(c *gin.Context) {
	username := c.Param("username")
	currentUser, _ := middlewares.CurrentUser(c)

	user, err := helper.GetUserByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	isFollowing := false
	for _, id := range user.Followers {
		if id == currentUser.ID {
			isFollowing = true
			break
		}
	}

	// the profile page shows the user's latest videos inline
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(20)
	cursor, err := videoCollection.Find(ctx, bson.M{"user": user.ID, "isActive": true}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching user profile"})
		return
	}
	defer cursor.Close(ctx)

	var videos []models.Video
	if err := cursor.All(ctx, &videos); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching user profile"})
		return
	}

	publicUser := user.ToPublicUser()
	videoResponses := make([]models.VideoResponse, 0, len(videos))
	for _, video := range videos {
		videoResponses = append(videoResponses, video.ToVideoJSON(publicUser, currentUser.ID))
	}

	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":             user.ID,
		"username":       user.Username,
		"displayName":    user.DisplayName,
		"bio":            user.Bio,
		"profilePicture": user.ProfilePicture,
		"coverImage":     user.CoverImage,
		"followersCount": user.FollowersCount,
		"followingCount": user.FollowingCount,
		"likesCount":     user.LikesCount,
		"videosCount":    user.VideosCount,
		"isVerified":     user.IsVerified,
		"isPrivate":      user.IsPrivate,
		"createdAt":      user.CreatedAt,
		"isFollowing":    isFollowing,
		"videos":         videoResponses,
	}})
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	update := bson.M{"updatedAt": time.Now().UTC()}
	if displayName := c.PostForm("displayName"); displayName != "" {
		update["displayName"] = displayName
	}
	if bio, exists := c.GetPostForm("bio"); exists {
		update["bio"] = bio
	}
	if theme := c.PostForm("themePreference"); theme != "" {
		if !validThemes[theme] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theme preference"})
			return
		}
		update["themePreference"] = theme
	}

	if file, err := c.FormFile("profilePicture"); err == nil {
		if err := helper.ValidateImageUpload(file, helper.MaxProfilePictureSize); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		url, err := helper.UploadToGridFS(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error updating profile"})
			return
		}
		update["profilePicture"] = url
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := userCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error updating profile"})
		return
	}

	updated, err := helper.GetUserById(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error updating profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    updated.ToProfileJSON(),
	})
}

func (uc *UserController) GetTheme(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	theme := user.ThemePreference
	if theme == "" {
		theme = "darkClassic"
	}
	c.JSON(http.StatusOK, gin.H{"themePreference": theme})
}

func (uc *UserController) UpdateTheme(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	var body struct {
		ThemePreference string `json:"themePreference"`
	}
	if err := c.ShouldBind(&body); err != nil || body.ThemePreference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Theme preference is required"})
		return
	}
	if !validThemes[body.ThemePreference] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theme preference"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := userCollection.UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"themePreference": body.ThemePreference, "updatedAt": time.Now().UTC()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error updating theme"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Theme updated successfully",
		"themePreference": body.ThemePreference,
	})
}

// ToggleFollow follows an unfollowed target and unfollows a followed
// one. Both relationship sets and both counters are rewritten from the
// mutated sets, so the counters track set sizes and cannot go negative.
func (uc *UserController) ToggleFollow(c *gin.Context) {
	currentUser, _ := middlewares.CurrentUser(c)
	targetID := c.Param("user_id")

	if targetID == currentUser.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	targetUser, err := helper.GetUserById(targetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	isFollowing := currentUser.IsFollowing(targetID)

	following := currentUser.Following
	followers := targetUser.Followers
	if isFollowing {
		following = removeID(following, targetID)
		followers = removeID(followers, currentUser.ID)
	} else {
		following = append(following, targetID)
		followers = append(followers, currentUser.ID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = userCollection.UpdateOne(ctx, bson.M{"_id": currentUser.ID}, bson.M{"$set": bson.M{
		"following":      following,
		"followingCount": len(following),
		"updatedAt":      time.Now().UTC(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during follow action"})
		return
	}
	_, err = userCollection.UpdateOne(ctx, bson.M{"_id": targetID}, bson.M{"$set": bson.M{
		"followers":      followers,
		"followersCount": len(followers),
		"updatedAt":      time.Now().UTC(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during follow action"})
		return
	}

	// push only after both writes committed
	if !isFollowing {
		uc.hub.NotifyUser(targetID, realtime.EventNewFollower, gin.H{
			"targetUserId": targetID,
			"follower":     currentUser.ToPublicUser(),
		})
	}

	message := "Followed successfully"
	if isFollowing {
		message = "Unfollowed successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     message,
		"isFollowing": !isFollowing,
	})
}

func removeID(ids []string, target string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

func (uc *UserController) GetFollowers(c *gin.Context) {
	uc.listRelationship(c, func(user models.User) []string { return user.Followers }, "followers")
}

func (uc *UserController) GetFollowing(c *gin.Context) {
	uc.listRelationship(c, func(user models.User) []string { return user.Following }, "following")
}

func (uc *UserController) listRelationship(c *gin.Context, pick func(models.User) []string, key string) {
	userID := c.Param("user_id")
	_, limit, skip := pageParams(c, 20)

	user, err := helper.GetUserById(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ids := pick(user)
	if skip >= len(ids) {
		c.JSON(http.StatusOK, gin.H{key: []models.PublicUser{}, "hasMore": false})
		return
	}
	end := skip + limit
	if end > len(ids) {
		end = len(ids)
	}
	pageIDs := ids[skip:end]

	users, err := helper.GetPublicUsers(pageIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching " + key})
		return
	}

	result := make([]models.PublicUser, 0, len(pageIDs))
	for _, id := range pageIDs {
		if pub, ok := users[id]; ok {
			result = append(result, pub)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		key:       result,
		"hasMore": services.HasMore(len(pageIDs), limit),
	})
}

func (uc *UserController) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if len(query) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query must be at least 2 characters"})
		return
	}
	_, limit, skip := pageParams(c, 20)

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"username": pattern},
		{"displayName": pattern},
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	findOptions := options.Find().
		SetSort(bson.D{{Key: "followersCount", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cursor, err := userCollection.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during user search"})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during user search"})
		return
	}

	result := make([]models.PublicUser, 0, len(users))
	for _, user := range users {
		result = append(result, user.ToPublicUser())
	}

	c.JSON(http.StatusOK, gin.H{
		"users":   result,
		"hasMore": services.HasMore(len(result), limit),
	})
}
