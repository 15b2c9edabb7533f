package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"reelhive/models"
)

func story(id, creator string, createdAt time.Time, viewers ...string) models.Story {
	s := models.Story{
		ID:        id,
		Creator:   creator,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(models.StoryLifetime),
	}
	for _, v := range viewers {
		s.Viewers = append(s.Viewers, models.StoryView{UserID: v, ViewedAt: createdAt})
	}
	return s
}

func TestGroupStories(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("stories group by creator, oldest first within a group", func(t *testing.T) {
		groups := GroupStories([]models.Story{
			story("a2", "alice", now.Add(-time.Hour)),
			story("a1", "alice", now.Add(-2*time.Hour)),
			story("b1", "bob", now.Add(-time.Minute)),
		}, "viewer", now)

		require.Len(t, groups, 2)
		for _, g := range groups {
			if g.CreatorID == "alice" {
				require.Equal(t, []string{"a1", "a2"},
					[]string{g.Stories[0].ID, g.Stories[1].ID})
			}
		}
	})

	t.Run("expired stories are dropped", func(t *testing.T) {
		groups := GroupStories([]models.Story{
			story("old", "alice", now.Add(-30*time.Hour)),
		}, "viewer", now)
		require.Empty(t, groups)
	})

	t.Run("highlights outlive the story lifetime", func(t *testing.T) {
		highlight := story("h1", "alice", now.Add(-30*time.Hour))
		highlight.IsHighlight = true

		groups := GroupStories([]models.Story{highlight}, "viewer", now)
		require.Len(t, groups, 1)
	})

	t.Run("deleted stories are dropped", func(t *testing.T) {
		gone := story("s1", "alice", now.Add(-time.Hour))
		gone.IsDeleted = true
		require.Empty(t, GroupStories([]models.Story{gone}, "viewer", now))
	})

	t.Run("unviewed groups come before fully viewed ones", func(t *testing.T) {
		groups := GroupStories([]models.Story{
			story("seen", "alice", now.Add(-time.Minute), "viewer"),
			story("fresh", "bob", now.Add(-time.Hour)),
		}, "viewer", now)

		require.Len(t, groups, 2)
		require.Equal(t, "bob", groups[0].CreatorID)
		require.True(t, groups[0].HasUnviewed)
		require.False(t, groups[1].HasUnviewed)
	})

	t.Run("same viewed state sorts by latest story", func(t *testing.T) {
		groups := GroupStories([]models.Story{
			story("older", "alice", now.Add(-2*time.Hour)),
			story("newer", "bob", now.Add(-time.Hour)),
		}, "viewer", now)

		require.Equal(t, "bob", groups[0].CreatorID)
		require.Equal(t, "alice", groups[1].CreatorID)
	})
}

func TestLiveStoryFilter(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	filter := LiveStoryFilter(now)

	t.Run("excludes deleted stories", func(t *testing.T) {
		require.Equal(t, false, filter["isDeleted"])
	})

	t.Run("keeps highlights past their expiry", func(t *testing.T) {
		branches, ok := filter["$or"].([]bson.M)
		require.True(t, ok)
		require.Equal(t, []bson.M{
			{"expiresAt": bson.M{"$gt": now}},
			{"isHighlight": true},
		}, branches)
	})
}

func TestHasUnviewedStory(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("true for a live unseen story", func(t *testing.T) {
		require.True(t, HasUnviewedStory([]models.Story{
			story("s1", "alice", now.Add(-time.Hour)),
		}, "viewer", now))
	})

	t.Run("false when everything is viewed", func(t *testing.T) {
		require.False(t, HasUnviewedStory([]models.Story{
			story("s1", "alice", now.Add(-time.Hour), "viewer"),
		}, "viewer", now))
	})

	t.Run("expired stories do not count", func(t *testing.T) {
		require.False(t, HasUnviewedStory([]models.Story{
			story("s1", "alice", now.Add(-30*time.Hour)),
		}, "viewer", now))
	})
}
