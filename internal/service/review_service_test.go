package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/deckflow-admin/internal/domain"
	"github.com/spec-kit/deckflow-admin/internal/events"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

func newReviewFixture() (*ReviewService, *MockRequestRepository, *MockDeckRepository, *MockUserRepository, *recordingDispatcher) {
	requests := new(MockRequestRepository)
	decks := new(MockDeckRepository)
	users := new(MockUserRepository)
	dispatcher := &recordingDispatcher{}
	svc := NewReviewService(ReviewDependencies{
		RequestRepo: requests,
		DeckRepo:    decks,
		UserRepo:    users,
		Dispatcher:  dispatcher,
	})
	return svc, requests, decks, users, dispatcher
}

func TestCreateRequestDefaultsToPending(t *testing.T) {
	svc, requests, decks, users, dispatcher := newReviewFixture()
	ctx := context.Background()

	decks.On("GetByID", ctx, "deck-1").Return(&domain.Deck{ID: "deck-1"}, nil)
	users.On("GetByID", ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil)
	requests.On("Create", ctx, mock.AnythingOfType("*domain.Request")).Run(func(args mock.Arguments) {
		req := args.Get(1).(*domain.Request)
		req.ID = "req-1"
		req.CreatedAt = time.Now()
	}).Return(nil)

	created, err := svc.CreateRequest(ctx, CreateRequestInput{DeckID: "deck-1", UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, created.Status)
	assert.Equal(t, "req-1", created.ID)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventRequestCreated, published[0].Type)
	assert.Equal(t, "req-1", published[0].SubjectID)
	requests.AssertExpectations(t)
}

func TestCreateRequestValidatesInput(t *testing.T) {
	svc, _, _, _, _ := newReviewFixture()
	ctx := context.Background()

	_, err := svc.CreateRequest(ctx, CreateRequestInput{DeckID: "", UserID: "user-1"})
	assert.True(t, apperrors.IsCode(err, "INVALID_ARGUMENT"))

	_, err = svc.CreateRequest(ctx, CreateRequestInput{DeckID: "deck-1", UserID: "  "})
	assert.True(t, apperrors.IsCode(err, "INVALID_ARGUMENT"))
}

func TestCreateRequestRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _, _ := newReviewFixture()

	_, err := svc.CreateRequest(context.Background(), CreateRequestInput{
		DeckID: "deck-1",
		UserID: "user-1",
		Status: "SHIPPED",
	})
	assert.True(t, apperrors.IsCode(err, "INVALID_ARGUMENT"))
}

func TestCreateRequestUnknownDeck(t *testing.T) {
	svc, _, decks, _, dispatcher := newReviewFixture()
	ctx := context.Background()

	decks.On("GetByID", ctx, "missing").Return(nil, pgx.ErrNoRows)

	_, err := svc.CreateRequest(ctx, CreateRequestInput{DeckID: "missing", UserID: "user-1"})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	assert.Empty(t, dispatcher.published())
}

func TestCreateRequestUnknownUser(t *testing.T) {
	svc, _, decks, users, _ := newReviewFixture()
	ctx := context.Background()

	decks.On("GetByID", ctx, "deck-1").Return(&domain.Deck{ID: "deck-1"}, nil)
	users.On("GetByID", ctx, "missing").Return(nil, pgx.ErrNoRows)

	_, err := svc.CreateRequest(ctx, CreateRequestInput{DeckID: "deck-1", UserID: "missing"})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestReviewRequestApproves(t *testing.T) {
	svc, requests, _, _, dispatcher := newReviewFixture()
	ctx := context.Background()

	pending := &domain.Request{ID: "req-1", Status: domain.RequestStatusPending}
	reviewed := &domain.Request{ID: "req-1", Status: domain.RequestStatusApproved}
	requests.On("GetByID", ctx, "req-1").Return(pending, nil)
	requests.On("MarkReviewed", ctx, "req-1", domain.RequestStatusApproved, "admin-1", (*string)(nil)).Return(reviewed, nil)

	updated, err := svc.ReviewRequest(ctx, "req-1", "approved", "admin-1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, updated.Status)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventRequestReviewed, published[0].Type)
	requests.AssertExpectations(t)
}

func TestReviewRequestAcceptsLegacyRejectSpelling(t *testing.T) {
	svc, requests, _, _, _ := newReviewFixture()
	ctx := context.Background()

	pending := &domain.Request{ID: "req-1", Status: domain.RequestStatusPending}
	note := "duplicate deck"
	rejected := &domain.Request{ID: "req-1", Status: domain.RequestStatusRejected, ReviewNote: &note}
	requests.On("GetByID", ctx, "req-1").Return(pending, nil)
	requests.On("MarkReviewed", ctx, "req-1", domain.RequestStatusRejected, "admin-1", &note).Return(rejected, nil)

	updated, err := svc.ReviewRequest(ctx, "req-1", "reject", "admin-1", "duplicate deck")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, updated.Status)
}

func TestReviewRequestRejectsInvalidDecision(t *testing.T) {
	svc, _, _, _, _ := newReviewFixture()
	ctx := context.Background()

	for _, decision := range []string{"", "garbage", "PENDING"} {
		_, err := svc.ReviewRequest(ctx, "req-1", decision, "admin-1", "note")
		assert.True(t, apperrors.IsCode(err, "INVALID_ARGUMENT"), "decision %q", decision)
	}
}

func TestReviewRequestRequiresNoteOnRejection(t *testing.T) {
	svc, _, _, _, _ := newReviewFixture()

	_, err := svc.ReviewRequest(context.Background(), "req-1", "rejected", "admin-1", "   ")
	assert.True(t, apperrors.IsCode(err, "INVALID_ARGUMENT"))
}

func TestReviewRequestUnknownRequest(t *testing.T) {
	svc, requests, _, _, _ := newReviewFixture()
	ctx := context.Background()

	requests.On("GetByID", ctx, "missing").Return(nil, pgx.ErrNoRows)

	_, err := svc.ReviewRequest(ctx, "missing", "approved", "admin-1", "")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestReviewRequestConflictOnSecondReview(t *testing.T) {
	svc, requests, _, _, dispatcher := newReviewFixture()
	ctx := context.Background()

	already := &domain.Request{ID: "req-1", Status: domain.RequestStatusApproved}
	requests.On("GetByID", ctx, "req-1").Return(already, nil)

	_, err := svc.ReviewRequest(ctx, "req-1", "rejected", "admin-2", "late rejection")
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
	assert.Empty(t, dispatcher.published())
}

func TestReviewRequestConflictWhenRaceLost(t *testing.T) {
	svc, requests, _, _, _ := newReviewFixture()
	ctx := context.Background()

	// The read still sees PENDING but the conditional write matches nothing.
	pending := &domain.Request{ID: "req-1", Status: domain.RequestStatusPending}
	requests.On("GetByID", ctx, "req-1").Return(pending, nil)
	requests.On("MarkReviewed", ctx, "req-1", domain.RequestStatusApproved, "admin-2", (*string)(nil)).Return(nil, pgx.ErrNoRows)

	_, err := svc.ReviewRequest(ctx, "req-1", "approved", "admin-2", "")
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestReviewLifecycleScenario(t *testing.T) {
	svc, requests, decks, users, _ := newReviewFixture()
	ctx := context.Background()

	decks.On("GetByID", ctx, "deck-7").Return(&domain.Deck{ID: "deck-7"}, nil)
	users.On("GetByID", ctx, "user-7").Return(&domain.User{ID: "user-7"}, nil)
	requests.On("Create", ctx, mock.AnythingOfType("*domain.Request")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Request).ID = "req-7"
	}).Return(nil)

	created, err := svc.CreateRequest(ctx, CreateRequestInput{DeckID: "deck-7", UserID: "user-7"})
	require.NoError(t, err)
	require.Equal(t, domain.RequestStatusPending, created.Status)

	approved := &domain.Request{ID: "req-7", Status: domain.RequestStatusApproved}
	requests.On("GetByID", ctx, "req-7").Return(created, nil).Once()
	requests.On("MarkReviewed", ctx, "req-7", domain.RequestStatusApproved, "admin-1", (*string)(nil)).Return(approved, nil)

	updated, err := svc.ReviewRequest(ctx, "req-7", "approved", "admin-1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, updated.Status)

	// A second decision on the same request observes the terminal state.
	requests.On("GetByID", ctx, "req-7").Return(approved, nil)
	_, err = svc.ReviewRequest(ctx, "req-7", "rejected", "admin-2", "changed my mind")
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}
