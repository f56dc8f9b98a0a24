package domain

import "time"

// Deck is a named collection of flashcards owned by a user. CardsCount is
// denormalized and maintained alongside the card associations.
type Deck struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	CardIDs     []string
	CardsCount  int
	CreatedAt   time.Time
}
