package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
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

var storyCollection *mongo.Collection = database.OpenCollection(database.Client, "story-collection")

type StoryController struct {
	hub *realtime.Hub
}

func NewStoryController(hub *realtime.Hub) *StoryController {
	return &StoryController{hub: hub}
}

func findStories(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]models.Story, error) {
	cursor, err := storyCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stories []models.Story
	if err := cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// shapeStoryGroups attaches creator profiles to grouped stories.
func shapeStoryGroups(groups []services.StoryGroup) ([]gin.H, error) {
	creatorIDs := lo.Map(groups, func(g services.StoryGroup, _ int) string { return g.CreatorID })
	creators, err := helper.GetPublicUsers(creatorIDs)
	if err != nil {
		return nil, err
	}
	shaped := make([]gin.H, 0, len(groups))
	for _, group := range groups {
		shaped = append(shaped, gin.H{
			"user":        creators[group.CreatorID],
			"stories":     group.Stories,
			"hasUnviewed": group.HasUnviewed,
		})
	}
	return shaped, nil
}

func (sc *StoryController) GetPublicStories(c *gin.Context) {
	currentUser, _ := middlewares.CurrentUser(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	filter := services.LiveStoryFilter(now)
	filter["privacy"] = models.StoryPrivacyPublic
	stories, err := findStories(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching stories"})
		return
	}

	groups := services.GroupStories(stories, currentUser.ID, now)
	shaped, err := shapeStoryGroups(groups)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching stories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"storyGroups": shaped})
}

func (sc *StoryController) CreateStory(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	now := time.Now().UTC()

	story := models.Story{
		ID:              uuid.New().String(),
		Creator:         user.ID,
		Content:         models.StoryContentText,
		Text:            c.PostForm("text"),
		TextColor:       c.PostForm("textColor"),
		BackgroundColor: c.PostForm("backgroundColor"),
		Privacy:         c.DefaultPostForm("privacy", models.StoryPrivacyPublic),
		ExpiresAt:       now.Add(models.StoryLifetime),
		Viewers:         []models.StoryView{},
		Reactions:       []models.Reaction{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if file, err := c.FormFile("media"); err == nil {
		if verr := helper.ValidateMediaUpload(file, helper.MaxMediaSize); verr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		url, uerr := helper.UploadToGridFS(file)
		if uerr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error uploading media"})
			return
		}
		story.MediaURL = url
		if helper.MediaTypeOf(file) == models.MessageTypeVideo {
			story.Content = models.StoryContentVideo
		} else {
			story.Content = models.StoryContentPhoto
		}
	} else if story.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Story needs media or text"})
		return
	}

	if raw := c.PostForm("stickers"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &story.Stickers); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stickers payload"})
			return
		}
	}
	if raw := c.PostForm("music"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &story.Music); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid music payload"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := storyCollection.InsertOne(ctx, story); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error creating story"})
		return
	}

	sc.hub.Broadcast(realtime.EventNewStory, gin.H{
		"story": story,
		"user":  user.ToPublicUser(),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Story created",
		"story":   story,
	})
}

func (sc *StoryController) GetMyStories(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := services.LiveStoryFilter(time.Now().UTC())
	filter["creator"] = user.ID
	stories, err := findStories(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching stories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stories": stories})
}

func (sc *StoryController) GetFollowingStories(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	creators := append([]string{user.ID}, user.Following...)
	filter := services.LiveStoryFilter(now)
	filter["creator"] = bson.M{"$in": creators}
	stories, err := findStories(ctx, filter, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching stories"})
		return
	}

	groups := services.GroupStories(stories, user.ID, now)
	shaped, err := shapeStoryGroups(groups)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching stories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"storyGroups": shaped})
}

func getLiveStory(ctx context.Context, storyID string) (models.Story, error) {
	var story models.Story
	err := storyCollection.FindOne(ctx, bson.M{"_id": storyID, "isDeleted": false}).Decode(&story)
	return story, err
}

func (sc *StoryController) ViewStory(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	storyID := c.Param("story_id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	story, err := getLiveStory(ctx, storyID)
	if err != nil || story.IsExpired(now) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	// the creator viewing their own story is not a view
	if story.Creator != user.ID && story.AddViewer(user.ID, now) {
		_, err = storyCollection.UpdateOne(ctx, bson.M{"_id": story.ID}, bson.M{"$set": bson.M{
			"viewers":    story.Viewers,
			"viewsCount": story.ViewsCount,
		}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error viewing story"})
			return
		}
		sc.hub.NotifyUser(story.Creator, realtime.EventStoryViewed, gin.H{
			"storyId": story.ID,
			"viewer":  user.ToPublicUser(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"story":      story,
		"viewsCount": story.ViewsCount,
	})
}

func (sc *StoryController) GetStoryViewers(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	storyID := c.Param("story_id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	story, err := getLiveStory(ctx, storyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}
	if story.Creator != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator can see viewers"})
		return
	}

	viewerIDs := lo.Map(story.Viewers, func(v models.StoryView, _ int) string { return v.UserID })
	profiles, err := helper.GetPublicUsers(viewerIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching viewers"})
		return
	}

	views := make([]models.StoryView, len(story.Viewers))
	copy(views, story.Viewers)
	sort.Slice(views, func(i, j int) bool { return views[i].ViewedAt.After(views[j].ViewedAt) })

	viewers := make([]gin.H, 0, len(views))
	for _, view := range views {
		viewers = append(viewers, gin.H{
			"user":     profiles[view.UserID],
			"viewedAt": view.ViewedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"viewers":    viewers,
		"viewsCount": story.ViewsCount,
	})
}

func (sc *StoryController) HighlightStory(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	storyID := c.Param("story_id")

	var body struct {
		Title string `json:"title"`
	}
	c.ShouldBindJSON(&body)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	story, err := getLiveStory(ctx, storyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}
	if story.Creator != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator can highlight a story"})
		return
	}

	_, err = storyCollection.UpdateOne(ctx, bson.M{"_id": story.ID}, bson.M{"$set": bson.M{
		"isHighlight":    true,
		"highlightTitle": body.Title,
		"updatedAt":      time.Now().UTC(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error highlighting story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story added to highlights"})
}

func (sc *StoryController) ReactToStory(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	storyID := c.Param("story_id")

	var body struct {
		Emoji string `json:"emoji"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Emoji == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Emoji is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	story, err := getLiveStory(ctx, storyID)
	if err != nil || story.IsExpired(now) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	story.Reactions = lo.Filter(story.Reactions, func(r models.Reaction, _ int) bool {
		return r.UserID != user.ID
	})
	story.Reactions = append(story.Reactions, models.Reaction{
		UserID:    user.ID,
		Emoji:     body.Emoji,
		CreatedAt: now,
	})

	_, err = storyCollection.UpdateOne(ctx, bson.M{"_id": story.ID},
		bson.M{"$set": bson.M{"reactions": story.Reactions}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error reacting to story"})
		return
	}

	if story.Creator != user.ID {
		sc.hub.NotifyUser(story.Creator, realtime.EventStoryReaction, gin.H{
			"storyId": story.ID,
			"emoji":   body.Emoji,
			"user":    user.ToPublicUser(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"reactions": story.Reactions})
}

func (sc *StoryController) DeleteStory(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	storyID := c.Param("story_id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	story, err := getLiveStory(ctx, storyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}
	if story.Creator != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator can delete a story"})
		return
	}

	_, err = storyCollection.UpdateOne(ctx, bson.M{"_id": story.ID},
		bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now().UTC()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story deleted"})
}
