package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"reelhive/models"
)

func makeVideos(prefix string, n int) []models.Video {
	videos := make([]models.Video, n)
	for i := range videos {
		videos[i] = models.Video{ID: fmt.Sprintf("%s-%d", prefix, i), User: prefix}
	}
	return videos
}

func TestPageSplit(t *testing.T) {
	t.Run("ten slots split seven to three", func(t *testing.T) {
		require.Equal(t, 7, FollowingLimit(10))
		require.Equal(t, 3, DiscoverLimit(10))
	})

	t.Run("partitions always cover the page", func(t *testing.T) {
		for limit := 1; limit <= 50; limit++ {
			require.Equal(t, limit, FollowingLimit(limit)+DiscoverLimit(limit), "limit %d", limit)
		}
	})
}

func TestAssembleFeed(t *testing.T) {
	t.Run("first page holds the whole blend when it fits", func(t *testing.T) {
		feed := AssembleFeed(makeVideos("followed", 7), makeVideos("discover", 3), 1, 10)
		require.Len(t, feed, 10)
	})

	t.Run("page is never larger than limit", func(t *testing.T) {
		feed := AssembleFeed(makeVideos("followed", 20), makeVideos("discover", 20), 1, 10)
		require.Len(t, feed, 10)
	})

	t.Run("no input videos are invented or lost", func(t *testing.T) {
		followed := makeVideos("followed", 4)
		discover := makeVideos("discover", 2)
		feed := AssembleFeed(followed, discover, 1, 10)

		require.Len(t, feed, 6)
		seen := make(map[string]bool)
		for _, v := range feed {
			seen[v.ID] = true
		}
		for _, v := range append(followed, discover...) {
			require.True(t, seen[v.ID], "missing %s", v.ID)
		}
	})

	t.Run("offset past the blend yields an empty page", func(t *testing.T) {
		feed := AssembleFeed(makeVideos("followed", 3), nil, 2, 10)
		require.Empty(t, feed)
	})

	t.Run("page below one is treated as the first", func(t *testing.T) {
		feed := AssembleFeed(makeVideos("followed", 3), nil, 0, 10)
		require.Len(t, feed, 3)
	})
}

func TestHasMore(t *testing.T) {
	require.True(t, HasMore(10, 10))
	require.False(t, HasMore(9, 10))
	require.False(t, HasMore(0, 10))
}
