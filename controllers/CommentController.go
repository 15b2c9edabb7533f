package controllers

import (
	"context"
	"net/http"
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
)

var commentCollection *mongo.Collection = database.OpenCollection(database.Client, "comment-collection")

type CommentController struct {
	hub *realtime.Hub
}

func NewCommentController(hub *realtime.Hub) *CommentController {
	return &CommentController{hub: hub}
}

func findComments(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]models.Comment, error) {
	cursor, err := commentCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// joinComments resolves author profiles for a batch of comments and
// shapes them for the API.
func joinComments(comments []models.Comment, currentUserID string) ([]models.CommentResponse, error) {
	authorIDs := lo.Uniq(lo.Map(comments, func(cm models.Comment, _ int) string { return cm.User }))
	authors, err := helper.GetPublicUsers(authorIDs)
	if err != nil {
		return nil, err
	}
	responses := make([]models.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, comment.ToCommentJSON(authors[comment.User], currentUserID))
	}
	return responses, nil
}

func (cc *CommentController) GetComments(c *gin.Context) {
	videoID := c.Param("video_id")
	currentUser, _ := middlewares.CurrentUser(c)
	_, limit, skip := pageParams(c, 20)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	comments, err := findComments(ctx, bson.M{
		"video":         videoID,
		"isActive":      true,
		"parentComment": bson.M{"$in": []interface{}{nil, ""}},
	}, options.Find().
		SetSort(bson.D{{Key: "likesCount", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching comments"})
		return
	}

	responses, err := joinComments(comments, currentUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching comments"})
		return
	}

	// attach the first few replies under each top-level comment
	for i, comment := range comments {
		if comment.RepliesCount == 0 {
			continue
		}
		replies, rerr := findComments(ctx, bson.M{
			"parentComment": comment.ID,
			"isActive":      true,
		}, options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: 1}}).
			SetLimit(3))
		if rerr != nil {
			continue
		}
		replyResponses, rerr := joinComments(replies, currentUser.ID)
		if rerr != nil {
			continue
		}
		responses[i].Replies = replyResponses
	}

	c.JSON(http.StatusOK, gin.H{"comments": responses})
}

func (cc *CommentController) AddComment(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	videoID := c.Param("video_id")

	var body struct {
		Text            string `json:"text"`
		ParentCommentID string `json:"parentCommentId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	video, err := getActiveVideo(ctx, videoID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}
	if !video.AllowComments {
		c.JSON(http.StatusForbidden, gin.H{"error": "Comments are disabled for this video"})
		return
	}

	var parent models.Comment
	if body.ParentCommentID != "" {
		err := commentCollection.FindOne(ctx, bson.M{
			"_id":      body.ParentCommentID,
			"video":    video.ID,
			"isActive": true,
		}).Decode(&parent)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parent comment not found"})
			return
		}
		// replies stay one level deep
		if parent.ParentComment != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Can only reply to top-level comments"})
			return
		}
	}

	comment := models.Comment{
		ID:            uuid.New().String(),
		Video:         video.ID,
		User:          user.ID,
		Text:          body.Text,
		ParentComment: body.ParentCommentID,
		Replies:       []string{},
		Likes:         []models.Like{},
		Mentions:      helper.ParseMentions(body.Text),
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := validate.Struct(comment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := commentCollection.InsertOne(ctx, comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error adding comment"})
		return
	}

	if body.ParentCommentID != "" {
		parent.Replies = append(parent.Replies, comment.ID)
		parent.RepliesCount = len(parent.Replies)
		_, err = commentCollection.UpdateOne(ctx, bson.M{"_id": parent.ID}, bson.M{"$set": bson.M{
			"replies":      parent.Replies,
			"repliesCount": parent.RepliesCount,
		}})
	} else {
		_, err = videoCollection.UpdateOne(ctx, bson.M{"_id": video.ID},
			bson.M{"$set": bson.M{"commentsCount": video.CommentsCount + 1}})
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error adding comment"})
		return
	}

	response := comment.ToCommentJSON(user.ToPublicUser(), user.ID)
	cc.hub.Broadcast(realtime.EventCommentAdded, gin.H{
		"videoId":         video.ID,
		"comment":         response,
		"parentCommentId": body.ParentCommentID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": response,
	})
}

func (cc *CommentController) GetReplies(c *gin.Context) {
	commentID := c.Param("comment_id")
	currentUser, _ := middlewares.CurrentUser(c)
	_, limit, skip := pageParams(c, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	replies, err := findComments(ctx, bson.M{
		"parentComment": commentID,
		"isActive":      true,
	}, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching replies"})
		return
	}

	responses, err := joinComments(replies, currentUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching replies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"replies": responses,
		"hasMore": len(replies) == limit,
	})
}

func (cc *CommentController) ToggleCommentLike(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	commentID := c.Param("comment_id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var comment models.Comment
	err := commentCollection.FindOne(ctx, bson.M{"_id": commentID, "isActive": true}).Decode(&comment)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	wasLiked := comment.IsLikedBy(user.ID)
	if wasLiked {
		comment.Likes = lo.Filter(comment.Likes, func(like models.Like, _ int) bool {
			return like.User != user.ID
		})
	} else {
		comment.Likes = append(comment.Likes, models.Like{User: user.ID, CreatedAt: time.Now().UTC()})
	}
	comment.LikesCount = len(comment.Likes)

	_, err = commentCollection.UpdateOne(ctx, bson.M{"_id": comment.ID}, bson.M{"$set": bson.M{
		"likes":      comment.Likes,
		"likesCount": comment.LikesCount,
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error liking comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isLiked":    !wasLiked,
		"likesCount": comment.LikesCount,
	})
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	commentID := c.Param("comment_id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var comment models.Comment
	err := commentCollection.FindOne(ctx, bson.M{
		"_id": commentID, "user": user.ID, "isActive": true,
	}).Decode(&comment)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found or unauthorized"})
		return
	}

	_, err = commentCollection.UpdateOne(ctx, bson.M{"_id": comment.ID},
		bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting comment"})
		return
	}

	if comment.ParentComment != "" {
		var parent models.Comment
		if err := commentCollection.FindOne(ctx, bson.M{"_id": comment.ParentComment}).Decode(&parent); err == nil {
			parent.Replies = lo.Filter(parent.Replies, func(id string, _ int) bool { return id != comment.ID })
			repliesCount := parent.RepliesCount - 1
			if repliesCount < 0 {
				repliesCount = 0
			}
			commentCollection.UpdateOne(ctx, bson.M{"_id": parent.ID}, bson.M{"$set": bson.M{
				"replies":      parent.Replies,
				"repliesCount": repliesCount,
			}})
		}
	} else {
		// replies go with their parent
		_, err = commentCollection.UpdateMany(ctx, bson.M{"parentComment": comment.ID},
			bson.M{"$set": bson.M{"isActive": false}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting comment"})
			return
		}
		if video, verr := getActiveVideo(ctx, comment.Video); verr == nil {
			commentsCount := video.CommentsCount - 1
			if commentsCount < 0 {
				commentsCount = 0
			}
			videoCollection.UpdateOne(ctx, bson.M{"_id": video.ID},
				bson.M{"$set": bson.M{"commentsCount": commentsCount}})
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
