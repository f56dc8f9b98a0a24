package domain

import "time"

// Notification is one admin-feed entry derived from a public deck request.
// Priority 1 marks pending requests so they surface first.
type Notification struct {
	ID          string    `json:"id"`
	ActorID     string    `json:"actorId"`
	ActorName   string    `json:"actorName"`
	ActorAvatar *string   `json:"actorAvatar,omitempty"`
	DeckID      string    `json:"deckId"`
	DeckTitle   string    `json:"deckTitle"`
	Message     string    `json:"message"`
	SortTime    time.Time `json:"sortTime"`
	Priority    int       `json:"priority"`
	IsRead      bool      `json:"isRead"`
}
