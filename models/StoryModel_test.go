package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoryIsExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("live until the deadline", func(t *testing.T) {
		s := Story{ExpiresAt: now.Add(time.Hour)}
		require.False(t, s.IsExpired(now))
	})

	t.Run("expired after the deadline", func(t *testing.T) {
		s := Story{ExpiresAt: now.Add(-time.Minute)}
		require.True(t, s.IsExpired(now))
	})

	t.Run("highlights never expire", func(t *testing.T) {
		s := Story{ExpiresAt: now.Add(-48 * time.Hour), IsHighlight: true}
		require.False(t, s.IsExpired(now))
	})
}

func TestStoryAddViewer(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first view is recorded", func(t *testing.T) {
		s := Story{}
		require.True(t, s.AddViewer("bob", now))
		require.Equal(t, 1, s.ViewsCount)
		require.True(t, s.ViewedBy("bob"))
	})

	t.Run("repeat views do not count twice", func(t *testing.T) {
		s := Story{}
		require.True(t, s.AddViewer("bob", now))
		require.False(t, s.AddViewer("bob", now.Add(time.Minute)))
		require.Equal(t, 1, s.ViewsCount)
		require.Len(t, s.Viewers, 1)
	})

	t.Run("views count tracks distinct viewers", func(t *testing.T) {
		s := Story{}
		s.AddViewer("bob", now)
		s.AddViewer("carol", now)
		require.Equal(t, 2, s.ViewsCount)
	})
}
