package controllers

import (
	"context"
	"net/http"
	"strings"
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

var videoCollection *mongo.Collection = database.OpenCollection(database.Client, "video-collection")

type VideoController struct {
	hub *realtime.Hub
}

func NewVideoController(hub *realtime.Hub) *VideoController {
	return &VideoController{hub: hub}
}

// joinVideos resolves creator profiles for a batch of videos in one
// store round trip and shapes them for the API.
func joinVideos(videos []models.Video, currentUserID string) ([]models.VideoResponse, error) {
	creatorIDs := lo.Uniq(lo.Map(videos, func(v models.Video, _ int) string { return v.User }))
	creators, err := helper.GetPublicUsers(creatorIDs)
	if err != nil {
		return nil, err
	}
	responses := make([]models.VideoResponse, 0, len(videos))
	for _, video := range videos {
		responses = append(responses, video.ToVideoJSON(creators[video.User], currentUserID))
	}
	return responses, nil
}

func findVideos(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]models.Video, error) {
	cursor, err := videoCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []models.Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (vc *VideoController) GetFeed(c *gin.Context) {
	page, limit, skip := pageParams(c, 10)
	currentUser, authenticated := middlewares.CurrentUser(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var videos []models.Video
	var err error

	if authenticated {
		// personalized page: 70% from followed creators (newest
		// first), 30% discovery, shuffled together
		followingVideos, ferr := findVideos(ctx, bson.M{
			"user":     bson.M{"$in": currentUser.Following},
			"isActive": true,
		}, options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(int64(services.FollowingLimit(limit))))
		if ferr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching feed"})
			return
		}

		excluded := append([]string{currentUser.ID}, currentUser.Following...)
		discoverVideos, derr := findVideos(ctx, bson.M{
			"user":     bson.M{"$nin": excluded},
			"isActive": true,
		}, options.Find().
			SetSort(bson.D{{Key: "likesCount", Value: -1}, {Key: "viewsCount", Value: -1}}).
			SetLimit(int64(services.DiscoverLimit(limit))))
		if derr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching feed"})
			return
		}

		videos = services.AssembleFeed(followingVideos, discoverVideos, page, limit)
	} else {
		// guests get the popularity-ordered feed
		videos, err = findVideos(ctx, bson.M{"isActive": true}, options.Find().
			SetSort(bson.D{{Key: "likesCount", Value: -1}, {Key: "viewsCount", Value: -1}}).
			SetSkip(int64(skip)).
			SetLimit(int64(limit)))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching feed"})
			return
		}
	}

	responses, err := joinVideos(videos, currentUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos":  responses,
		"hasMore": services.HasMore(len(videos), limit),
	})
}

func (vc *VideoController) GetTrending(c *gin.Context) {
	_, limit, skip := pageParams(c, 10)
	currentUser, _ := middlewares.CurrentUser(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	videos, err := findVideos(ctx, bson.M{
		"isActive":  true,
		"createdAt": bson.M{"$gte": weekAgo},
	}, options.Find().
		SetSort(bson.D{
			{Key: "likesCount", Value: -1},
			{Key: "commentsCount", Value: -1},
			{Key: "sharesCount", Value: -1},
			{Key: "viewsCount", Value: -1},
		}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching trending videos"})
		return
	}

	responses, err := joinVideos(videos, currentUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching trending videos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos":  responses,
		"hasMore": services.HasMore(len(videos), limit),
	})
}

func (vc *VideoController) UploadVideo(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	file, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video file is required"})
		return
	}
	if err := helper.ValidateVideoUpload(file, helper.MaxMediaSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	videoURL, err := helper.UploadToGridFS(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error uploading video"})
		return
	}

	caption := c.PostForm("caption")
	hashtags := helper.ParseHashtags(caption)
	if raw := c.PostForm("hashtags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			hashtags = append(hashtags, strings.ToLower(strings.TrimSpace(tag)))
		}
		hashtags = lo.Uniq(hashtags)
	}

	video := models.Video{
		ID:            uuid.New().String(),
		User:          user.ID,
		Caption:       caption,
		VideoURL:      videoURL,
		Likes:         []models.Like{},
		Hashtags:      hashtags,
		Mentions:      helper.ParseMentions(caption),
		AllowComments: c.DefaultPostForm("allowComments", "true") == "true",
		AllowDownload: c.DefaultPostForm("allowDownload", "true") == "true",
		AllowDuet:     c.DefaultPostForm("allowDuet", "true") == "true",
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := videoCollection.InsertOne(ctx, video); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error uploading video"})
		return
	}

	_, err = userCollection.UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"videosCount": user.VideosCount + 1}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error uploading video"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Video uploaded successfully",
		"video":   video.ToVideoJSON(user.ToPublicUser(), user.ID),
	})
}

func getActiveVideo(ctx context.Context, videoID string) (models.Video, error) {
	var video models.Video
	err := videoCollection.FindOne(ctx, bson.M{"_id": videoID, "isActive": true}).Decode(&video)
	return video, err
}

func (vc *VideoController) GetVideo(c *gin.Context) {
	videoID := c.Param("video_id")
	currentUser, _ := middlewares.CurrentUser(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	video, err := getActiveVideo(ctx, videoID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	// best-effort view counter, fetch-mutate-save like every counter here
	video.ViewsCount++
	_, err = videoCollection.UpdateOne(ctx, bson.M{"_id": video.ID},
		bson.M{"$set": bson.M{"viewsCount": video.ViewsCount}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching video"})
		return
	}

	creator, err := helper.GetUserById(video.User)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"video": video.ToVideoJSON(creator.ToPublicUser(), currentUser.ID)})
}

func (vc *VideoController) ToggleLike(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	videoID := c.Param("video_id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	video, err := getActiveVideo(ctx, videoID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	wasLiked := video.IsLikedBy(user.ID)
	if wasLiked {
		video.Likes = lo.Filter(video.Likes, func(like models.Like, _ int) bool {
			return like.User != user.ID
		})
	} else {
		video.Likes = append(video.Likes, models.Like{User: user.ID, CreatedAt: time.Now().UTC()})
	}
	video.LikesCount = len(video.Likes)

	_, err = videoCollection.UpdateOne(ctx, bson.M{"_id": video.ID}, bson.M{"$set": bson.M{
		"likes":      video.Likes,
		"likesCount": video.LikesCount,
		"updatedAt":  time.Now().UTC(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error liking video"})
		return
	}

	vc.hub.Broadcast(realtime.EventLikeUpdated, gin.H{
		"videoId":    video.ID,
		"likesCount": video.LikesCount,
		"isLiked":    !wasLiked,
	})

	message := "Video liked"
	if wasLiked {
		message = "Video unliked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"isLiked":    !wasLiked,
		"likesCount": video.LikesCount,
	})
}

func (vc *VideoController) ShareVideo(c *gin.Context) {
	videoID := c.Param("video_id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	video, err := getActiveVideo(ctx, videoID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	video.SharesCount++
	_, err = videoCollection.UpdateOne(ctx, bson.M{"_id": video.ID},
		bson.M{"$set": bson.M{"sharesCount": video.SharesCount}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error sharing video"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Video shared",
		"sharesCount": video.SharesCount,
	})
}

func (vc *VideoController) DeleteVideo(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	videoID := c.Param("video_id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var video models.Video
	err := videoCollection.FindOne(ctx, bson.M{
		"_id": videoID, "user": user.ID, "isActive": true,
	}).Decode(&video)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found or unauthorized"})
		return
	}

	_, err = videoCollection.UpdateOne(ctx, bson.M{"_id": video.ID},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting video"})
		return
	}

	// cascade the soft delete to the video's comments
	_, err = commentCollection.UpdateMany(ctx, bson.M{"video": video.ID},
		bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting video"})
		return
	}

	videosCount := user.VideosCount - 1
	if videosCount < 0 {
		videosCount = 0
	}
	_, err = userCollection.UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"videosCount": videosCount}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting video"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully"})
}
