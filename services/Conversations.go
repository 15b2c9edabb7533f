package services

import (
	"sort"
	"time"

	"reelhive/models"
)

// ConversationSummary is one row of the conversation list: the
// counterpart, the newest message exchanged with them and how many of
// their messages the viewer has not read yet. The counterpart profile
// and story indicator are joined in by the caller.
type ConversationSummary struct {
	UserID      string
	LastMessage models.Message
	UnreadCount int
}

// AggregateConversations derives one summary per counterpart from a
// flat message history. Two passes: partition by the other side of the
// sender/recipient edge, then reduce each partition to its most recent
// message and unread count. Globally deleted messages, messages the
// viewer deleted for themselves and disappearing messages past their
// deadline are skipped entirely.
func AggregateConversations(messages []models.Message, viewerID string, now time.Time) []ConversationSummary {
	byCounterpart := make(map[string][]models.Message)
	for _, msg := range messages {
		if msg.Sender != viewerID && msg.Recipient != viewerID {
			continue
		}
		if !msg.VisibleTo(viewerID) || msg.IsExpired(now) {
			continue
		}
		counterpart := msg.CounterpartOf(viewerID)
		byCounterpart[counterpart] = append(byCounterpart[counterpart], msg)
	}

	summaries := make([]ConversationSummary, 0, len(byCounterpart))
	for counterpart, group := range byCounterpart {
		summary := ConversationSummary{UserID: counterpart, LastMessage: group[0]}
		for _, msg := range group {
			if msg.CreatedAt.After(summary.LastMessage.CreatedAt) {
				summary.LastMessage = msg
			}
			if msg.Recipient == viewerID && !msg.IsRead {
				summary.UnreadCount++
			}
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastMessage.CreatedAt.After(summaries[j].LastMessage.CreatedAt)
	})
	return summaries
}
