package events

import (
	"time"

	"github.com/spec-kit/deckflow-admin/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated  EventType = "request_created"
	EventRequestReviewed EventType = "request_reviewed"
	EventPayoutRejected  EventType = "payout_rejected"
)

// Event represents a domain event emitted by services. SubjectID is the
// affected entity (request or transaction id).
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	DeckID string               `json:"deck_id"`
	UserID string               `json:"user_id"`
	Status domain.RequestStatus `json:"status"`
}

// RequestReviewedPayload payload.
type RequestReviewedPayload struct {
	OldStatus  domain.RequestStatus `json:"old_status"`
	NewStatus  domain.RequestStatus `json:"new_status"`
	ReviewerID string               `json:"reviewer_id"`
	Note       string               `json:"note,omitempty"`
}

// PayoutRejectedPayload payload.
type PayoutRejectedPayload struct {
	Reason string  `json:"reason"`
	Amount float64 `json:"amount"`
}
