package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"reelhive/models"
)

func msg(id, sender, recipient string, at time.Time) models.Message {
	return models.Message{
		ID:        id,
		Sender:    sender,
		Recipient: recipient,
		Text:      id,
		CreatedAt: at,
	}
}

func TestAggregateConversations(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base.Add(time.Hour)

	t.Run("both directions collapse into one conversation", func(t *testing.T) {
		messages := []models.Message{
			msg("m1", "alice", "bob", base),
			msg("m2", "bob", "alice", base.Add(time.Minute)),
		}

		summaries := AggregateConversations(messages, "bob", now)
		require.Len(t, summaries, 1)
		require.Equal(t, "alice", summaries[0].UserID)
		require.Equal(t, "m2", summaries[0].LastMessage.ID)
	})

	t.Run("unread counts only incoming unread messages", func(t *testing.T) {
		messages := []models.Message{
			msg("m1", "alice", "bob", base),
			msg("m2", "alice", "bob", base.Add(time.Minute)),
			msg("m3", "bob", "alice", base.Add(2*time.Minute)),
		}
		read := msg("m4", "alice", "bob", base.Add(3*time.Minute))
		read.IsRead = true
		messages = append(messages, read)

		summaries := AggregateConversations(messages, "bob", now)
		require.Len(t, summaries, 1)
		require.Equal(t, 2, summaries[0].UnreadCount)
	})

	t.Run("conversations sort newest first", func(t *testing.T) {
		messages := []models.Message{
			msg("old", "carol", "bob", base),
			msg("new", "alice", "bob", base.Add(time.Minute)),
		}

		summaries := AggregateConversations(messages, "bob", now)
		require.Len(t, summaries, 2)
		require.Equal(t, "alice", summaries[0].UserID)
		require.Equal(t, "carol", summaries[1].UserID)
	})

	t.Run("messages the viewer is not part of are ignored", func(t *testing.T) {
		messages := []models.Message{
			msg("m1", "alice", "carol", base),
		}
		require.Empty(t, AggregateConversations(messages, "bob", now))
	})

	t.Run("deleted messages are invisible", func(t *testing.T) {
		gone := msg("m1", "alice", "bob", base)
		gone.IsDeleted = true
		hidden := msg("m2", "alice", "bob", base.Add(time.Minute))
		hidden.DeletedFor = []string{"bob"}

		require.Empty(t, AggregateConversations([]models.Message{gone, hidden}, "bob", now))
	})

	t.Run("message deleted for the other side still shows", func(t *testing.T) {
		hidden := msg("m1", "alice", "bob", base)
		hidden.DeletedFor = []string{"alice"}

		summaries := AggregateConversations([]models.Message{hidden}, "bob", now)
		require.Len(t, summaries, 1)
	})

	t.Run("disappearing messages past their deadline vanish", func(t *testing.T) {
		expired := msg("m1", "alice", "bob", base)
		deadline := base.Add(30 * time.Minute)
		expired.ExpiresAt = &deadline

		require.Empty(t, AggregateConversations([]models.Message{expired}, "bob", now))
	})

	t.Run("disappearing message still inside its deadline shows", func(t *testing.T) {
		ticking := msg("m1", "alice", "bob", base)
		deadline := now.Add(time.Hour)
		ticking.ExpiresAt = &deadline

		summaries := AggregateConversations([]models.Message{ticking}, "bob", now)
		require.Len(t, summaries, 1)
	})
}
