package domain

import (
	"fmt"
	"strings"
	"time"
)

// RequestStatus enumerates lifecycle states for publication requests.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// ParseRequestStatus canonicalizes user-supplied status values. The legacy
// "reject" spelling is accepted and normalized to REJECTED.
func ParseRequestStatus(raw string) (RequestStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PENDING":
		return RequestStatusPending, nil
	case "APPROVED":
		return RequestStatusApproved, nil
	case "REJECTED", "REJECT":
		return RequestStatusRejected, nil
	default:
		return "", fmt.Errorf("invalid status %q", raw)
	}
}

// Terminal reports whether the status has no outgoing transitions.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// Request is the aggregate for deck publication requests. DeckID and UserID
// are immutable after creation; reviewer fields are set only on the
// transition out of PENDING.
type Request struct {
	ID         string
	DeckID     string
	UserID     string
	Status     RequestStatus
	ReviewedBy *string
	ReviewNote *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RequestDetail is a request with its related deck and requesting user
// resolved to full records.
type RequestDetail struct {
	Request
	Deck      Deck
	Requester User
}

// PublicRequestSummary annotates a request with owner display info and the
// deck's card count for the admin review feed.
type PublicRequestSummary struct {
	Request
	DeckName    string
	OwnerName   string
	OwnerAvatar *string
	CardsCount  int
}
