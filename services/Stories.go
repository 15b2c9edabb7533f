package services

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"reelhive/models"
)

// LiveStoryFilter matches stories that are still visible: not deleted,
// and either unexpired or promoted to a highlight (highlights never
// age out). Every story listing queries through this filter so the
// highlight exemption cannot be lost in one place.
func LiveStoryFilter(now time.Time) bson.M {
	return bson.M{
		"isDeleted": false,
		"$or": []bson.M{
			{"expiresAt": bson.M{"$gt": now}},
			{"isHighlight": true},
		},
	}
}

// StoryGroup is one tray entry: a creator's live stories plus whether
// any of them is still unviewed by the viewer.
type StoryGroup struct {
	CreatorID   string
	Stories     []models.Story
	HasUnviewed bool
	LatestStory time.Time
}

// GroupStories partitions live stories by creator and reduces each
// partition to its tray entry. Deleted and expired stories are skipped
// (highlights never expire). Groups with unviewed stories sort first,
// then by most recent story.
func GroupStories(stories []models.Story, viewerID string, now time.Time) []StoryGroup {
	byCreator := make(map[string][]models.Story)
	for _, story := range stories {
		if story.IsDeleted || story.IsExpired(now) {
			continue
		}
		byCreator[story.Creator] = append(byCreator[story.Creator], story)
	}

	groups := make([]StoryGroup, 0, len(byCreator))
	for creator, group := range byCreator {
		sort.Slice(group, func(i, j int) bool {
			return group[i].CreatedAt.Before(group[j].CreatedAt)
		})
		entry := StoryGroup{CreatorID: creator, Stories: group}
		for _, story := range group {
			if story.CreatedAt.After(entry.LatestStory) {
				entry.LatestStory = story.CreatedAt
			}
			if !story.ViewedBy(viewerID) {
				entry.HasUnviewed = true
			}
		}
		groups = append(groups, entry)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].HasUnviewed != groups[j].HasUnviewed {
			return groups[i].HasUnviewed
		}
		return groups[i].LatestStory.After(groups[j].LatestStory)
	})
	return groups
}

// HasUnviewedStory reports whether any of the given stories is live and
// not yet viewed by the viewer. Used for the story ring next to a
// conversation.
func HasUnviewedStory(stories []models.Story, viewerID string, now time.Time) bool {
	for _, story := range stories {
		if story.IsDeleted || story.IsExpired(now) {
			continue
		}
		if !story.ViewedBy(viewerID) {
			return true
		}
	}
	return false
}
