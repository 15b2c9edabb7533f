package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMessageVisibleTo(t *testing.T) {
	t.Run("plain message is visible to both sides", func(t *testing.T) {
		m := Message{Sender: "alice", Recipient: "bob"}
		require.True(t, m.VisibleTo("alice"))
		require.True(t, m.VisibleTo("bob"))
	})

	t.Run("globally deleted message is visible to nobody", func(t *testing.T) {
		m := Message{Sender: "alice", Recipient: "bob", IsDeleted: true}
		require.False(t, m.VisibleTo("alice"))
		require.False(t, m.VisibleTo("bob"))
	})

	t.Run("deleted-for hides only for that viewer", func(t *testing.T) {
		m := Message{Sender: "alice", Recipient: "bob", DeletedFor: []string{"bob"}}
		require.True(t, m.VisibleTo("alice"))
		require.False(t, m.VisibleTo("bob"))
	})
}

func TestMessageIsExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no deadline never expires", func(t *testing.T) {
		require.False(t, Message{}.IsExpired(now))
	})

	t.Run("live until the deadline", func(t *testing.T) {
		deadline := now.Add(time.Minute)
		require.False(t, Message{ExpiresAt: &deadline}.IsExpired(now))
	})

	t.Run("expired after the deadline", func(t *testing.T) {
		deadline := now.Add(-time.Minute)
		require.True(t, Message{ExpiresAt: &deadline}.IsExpired(now))
	})
}

func TestMessageCounterpartOf(t *testing.T) {
	m := Message{Sender: "alice", Recipient: "bob"}
	require.Equal(t, "bob", m.CounterpartOf("alice"))
	require.Equal(t, "alice", m.CounterpartOf("bob"))
}

func TestMessagePreviewText(t *testing.T) {
	t.Run("text wins over type labels", func(t *testing.T) {
		m := Message{Text: "hello", MessageType: MessageTypeImage}
		require.Equal(t, "hello", m.PreviewText())
	})

	t.Run("media labels", func(t *testing.T) {
		cases := map[string]string{
			MessageTypeImage:      "📷 Photo",
			MessageTypeVideo:      "🎥 Video",
			MessageTypeAudio:      "🎵 Voice message",
			MessageTypeStoryReply: "Replied to a story",
			MessageTypeMediaGroup: "🖼️ Album",
		}
		for messageType, want := range cases {
			m := Message{MessageType: messageType}
			require.Equal(t, want, m.PreviewText())
		}
	})
}
