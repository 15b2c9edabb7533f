package realtime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHubNotifyUser(t *testing.T) {
	t.Run("delivers to the target connection only", func(t *testing.T) {
		registry := NewRegistry()
		hub := NewHub(registry)
		alice := &fakeConn{}
		bob := &fakeConn{}
		registry.Register("alice", alice)
		registry.Register("bob", bob)

		hub.NotifyUser("bob", EventNewMessage, "hi")

		require.Empty(t, alice.frames)
		require.Len(t, bob.frames, 1)
		require.Equal(t, EventNewMessage, bob.frames[0].Event)
		require.Equal(t, "hi", bob.frames[0].Data)
	})

	t.Run("offline target is a no-op", func(t *testing.T) {
		registry := NewRegistry()
		hub := NewHub(registry)

		hub.NotifyUser("ghost", EventNewMessage, "hi")
		require.Equal(t, 0, registry.Online())
	})

	t.Run("events arrive in call order", func(t *testing.T) {
		registry := NewRegistry()
		hub := NewHub(registry)
		conn := &fakeConn{}
		registry.Register("alice", conn)

		hub.NotifyUser("alice", EventNewMessage, 1)
		hub.NotifyUser("alice", EventMessageReaction, 2)
		hub.NotifyUser("alice", EventMessageDeleted, 3)

		require.Len(t, conn.frames, 3)
		require.Equal(t, []string{EventNewMessage, EventMessageReaction, EventMessageDeleted},
			[]string{conn.frames[0].Event, conn.frames[1].Event, conn.frames[2].Event})
	})

	t.Run("failed write drops the connection", func(t *testing.T) {
		registry := NewRegistry()
		hub := NewHub(registry)
		conn := &fakeConn{err: errors.New("broken pipe")}
		registry.Register("alice", conn)

		hub.NotifyUser("alice", EventNewMessage, "hi")

		_, ok := registry.Resolve("alice")
		require.False(t, ok)
	})
}

func TestHubNotifyUsers(t *testing.T) {
	registry := NewRegistry()
	hub := NewHub(registry)
	alice := &fakeConn{}
	bob := &fakeConn{}
	registry.Register("alice", alice)
	registry.Register("bob", bob)

	hub.NotifyUsers([]string{"alice", "bob", "offline"}, EventNotification, "ping")

	require.Len(t, alice.frames, 1)
	require.Len(t, bob.frames, 1)
}

func TestHubBroadcast(t *testing.T) {
	t.Run("reaches every connection", func(t *testing.T) {
		registry := NewRegistry()
		hub := NewHub(registry)
		alice := &fakeConn{}
		bob := &fakeConn{}
		registry.Register("alice", alice)
		registry.Register("bob", bob)

		hub.Broadcast(EventLikeUpdated, "data")

		require.Len(t, alice.frames, 1)
		require.Len(t, bob.frames, 1)
	})

	t.Run("except skips the originating connection", func(t *testing.T) {
		registry := NewRegistry()
		hub := NewHub(registry)
		origin := &fakeConn{}
		other := &fakeConn{}
		registry.Register("alice", origin)
		registry.Register("bob", other)

		hub.BroadcastExcept(origin, EventCommentAdded, "data")

		require.Empty(t, origin.frames)
		require.Len(t, other.frames, 1)
	})

	t.Run("one dead connection does not block the rest", func(t *testing.T) {
		registry := NewRegistry()
		hub := NewHub(registry)
		dead := &fakeConn{err: errors.New("closed")}
		live := &fakeConn{}
		registry.Register("alice", dead)
		registry.Register("bob", live)

		hub.Broadcast(EventNewStory, "data")

		require.Len(t, live.frames, 1)
		_, ok := registry.Resolve("alice")
		require.False(t, ok)
	})
}
