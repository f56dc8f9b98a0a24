package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/deckflow-admin/internal/domain"
	"github.com/spec-kit/deckflow-admin/internal/events"
	"github.com/spec-kit/deckflow-admin/internal/repository"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

// ReviewService owns the publication request state machine: requests start
// PENDING and transition exactly once, to APPROVED or REJECTED.
type ReviewService struct {
	requests   repository.RequestRepository
	decks      repository.DeckRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// ReviewDependencies bundles repositories for the review service.
type ReviewDependencies struct {
	RequestRepo repository.RequestRepository
	DeckRepo    repository.DeckRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewReviewService constructs the service.
func NewReviewService(deps ReviewDependencies) *ReviewService {
	return &ReviewService{
		requests:   deps.RequestRepo,
		decks:      deps.DeckRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateRequestInput describes request creation payload. Status is the raw
// client value; empty means the PENDING default.
type CreateRequestInput struct {
	DeckID string
	UserID string
	Status string
}

// CreateRequest validates referenced entities and persists a new request.
// Multiple pending requests for the same deck are allowed.
func (s *ReviewService) CreateRequest(ctx context.Context, input CreateRequestInput) (*domain.Request, error) {
	if strings.TrimSpace(input.DeckID) == "" || strings.TrimSpace(input.UserID) == "" {
		return nil, apperrors.NewInvalidArgument("deckId and userId required", nil)
	}

	status := domain.RequestStatusPending
	if strings.TrimSpace(input.Status) != "" {
		parsed, err := domain.ParseRequestStatus(input.Status)
		if err != nil {
			return nil, apperrors.NewInvalidArgument("invalid status", map[string]any{"status": input.Status})
		}
		status = parsed
	}

	if _, err := s.decks.GetByID(ctx, input.DeckID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("deck", map[string]any{"deck_id": input.DeckID})
		}
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": input.UserID})
		}
		return nil, err
	}

	request := &domain.Request{
		DeckID: input.DeckID,
		UserID: input.UserID,
		Status: status,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestCreated,
		SubjectID: request.ID,
		ActorID:   request.UserID,
		Payload: events.RequestCreatedPayload{
			DeckID: request.DeckID,
			UserID: request.UserID,
			Status: request.Status,
		},
	})
	return request, nil
}

// ReviewRequest applies an admin decision to a pending request. The write is
// conditional on the request still being PENDING, so exactly one of two
// concurrent reviews wins; the loser observes Conflict.
func (s *ReviewService) ReviewRequest(ctx context.Context, requestID, decision, reviewerID, note string) (*domain.Request, error) {
	status, err := domain.ParseRequestStatus(decision)
	if err != nil || status == domain.RequestStatusPending {
		return nil, apperrors.NewInvalidArgument("invalid status", map[string]any{"status": decision})
	}
	if status == domain.RequestStatusRejected && strings.TrimSpace(note) == "" {
		return nil, apperrors.NewInvalidArgument("review note required on rejection", nil)
	}

	current, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": requestID})
		}
		return nil, err
	}
	if current.Status.Terminal() {
		return nil, apperrors.NewConflict("request already reviewed", map[string]any{
			"request_id": requestID,
			"status":     current.Status,
		})
	}

	var notePtr *string
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		notePtr = &trimmed
	}

	updated, err := s.requests.MarkReviewed(ctx, requestID, status, reviewerID, notePtr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost the race: the request left PENDING between read and write.
			return nil, apperrors.NewConflict("request already reviewed", map[string]any{"request_id": requestID})
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestReviewed,
		SubjectID: updated.ID,
		ActorID:   reviewerID,
		Payload: events.RequestReviewedPayload{
			OldStatus:  domain.RequestStatusPending,
			NewStatus:  updated.Status,
			ReviewerID: reviewerID,
			Note:       note,
		},
	})
	return updated, nil
}

func (s *ReviewService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
