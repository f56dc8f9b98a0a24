package dto

import (
	"time"

	"github.com/spec-kit/deckflow-admin/internal/domain"
)

// CreateRequestPayload is the customer submission body.
type CreateRequestPayload struct {
	DeckID string `json:"deckId"`
	UserID string `json:"userId"`
	Status string `json:"status,omitempty"`
}

// ReviewRequestPayload is the admin decision body.
type ReviewRequestPayload struct {
	Status     string `json:"status"`
	ReviewNote string `json:"reviewNote,omitempty"`
}

// DeckResponse is the expanded deck reference.
type DeckResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"deckName"`
	Description string    `json:"description"`
	OwnerID     string    `json:"userId"`
	CardsCount  int       `json:"cardsCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserResponse is the expanded user reference; no credential material.
type UserResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	AvatarURL *string         `json:"avatar,omitempty"`
	Role      domain.UserRole `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
}

// RequestResponse is the bare request.
type RequestResponse struct {
	ID         string               `json:"id"`
	DeckID     string               `json:"deckId"`
	UserID     string               `json:"userId"`
	Status     domain.RequestStatus `json:"status"`
	ReviewedBy *string              `json:"reviewedBy,omitempty"`
	ReviewNote *string              `json:"reviewNote,omitempty"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

// RequestDetailResponse carries the request with deck and user expanded.
type RequestDetailResponse struct {
	RequestResponse
	Deck DeckResponse `json:"deck"`
	User UserResponse `json:"user"`
}

// RequestListResponse is the paginated admin listing.
type RequestListResponse struct {
	Requests    []RequestDetailResponse `json:"requests"`
	TotalPages  int64                   `json:"totalPages"`
	CurrentPage int                     `json:"currentPage"`
}

// FromRequest maps a domain request.
func FromRequest(request *domain.Request) RequestResponse {
	return RequestResponse{
		ID:         request.ID,
		DeckID:     request.DeckID,
		UserID:     request.UserID,
		Status:     request.Status,
		ReviewedBy: request.ReviewedBy,
		ReviewNote: request.ReviewNote,
		CreatedAt:  request.CreatedAt,
		UpdatedAt:  request.UpdatedAt,
	}
}

// FromRequestDetail maps an expanded request.
func FromRequestDetail(detail *domain.RequestDetail) RequestDetailResponse {
	return RequestDetailResponse{
		RequestResponse: FromRequest(&detail.Request),
		Deck: DeckResponse{
			ID:          detail.Deck.ID,
			Name:        detail.Deck.Name,
			Description: detail.Deck.Description,
			OwnerID:     detail.Deck.OwnerID,
			CardsCount:  detail.Deck.CardsCount,
			CreatedAt:   detail.Deck.CreatedAt,
		},
		User: FromUser(&detail.Requester),
	}
}

// FromUser maps a domain user.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
