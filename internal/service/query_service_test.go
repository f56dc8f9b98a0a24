package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/deckflow-admin/internal/domain"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

func detailFixtures(n int) []domain.RequestDetail {
	items := make([]domain.RequestDetail, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.RequestDetail{
			Request: domain.Request{ID: fmt.Sprintf("req-%d", i), Status: domain.RequestStatusPending},
		})
	}
	return items
}

func TestListRequestsDefaults(t *testing.T) {
	requests := new(MockRequestRepository)
	svc := NewRequestQueryService(requests)
	ctx := context.Background()

	requests.On("ListDetails", ctx, 10, 0).Return(detailFixtures(10), nil)
	requests.On("CountAll", ctx).Return(int64(15), nil)

	page, err := svc.ListRequests(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, int64(2), page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	requests.AssertExpectations(t)
}

func TestListRequestsSecondPage(t *testing.T) {
	requests := new(MockRequestRepository)
	svc := NewRequestQueryService(requests)
	ctx := context.Background()

	requests.On("ListDetails", ctx, 10, 10).Return(detailFixtures(5), nil)
	requests.On("CountAll", ctx).Return(int64(15), nil)

	page, err := svc.ListRequests(ctx, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(2), page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
}

func TestListRequestsRejectsNonPositiveInput(t *testing.T) {
	svc := NewRequestQueryService(new(MockRequestRepository))
	ctx := context.Background()

	cases := []struct{ page, pageSize int }{
		{-1, 10},
		{1, -5},
		{-3, -3},
	}
	for _, tc := range cases {
		_, err := svc.ListRequests(ctx, tc.page, tc.pageSize)
		assert.True(t, apperrors.IsCode(err, "INVALID_ARGUMENT"), "page=%d limit=%d", tc.page, tc.pageSize)
	}
}

func TestGetRequestByIDNotFound(t *testing.T) {
	requests := new(MockRequestRepository)
	svc := NewRequestQueryService(requests)
	ctx := context.Background()

	requests.On("GetDetailByID", ctx, "missing").Return(nil, pgx.ErrNoRows)

	_, err := svc.GetRequestByID(ctx, "missing")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestGetRequestByIDExpandsRelations(t *testing.T) {
	requests := new(MockRequestRepository)
	svc := NewRequestQueryService(requests)
	ctx := context.Background()

	detail := &domain.RequestDetail{
		Request:   domain.Request{ID: "req-1", DeckID: "deck-1", UserID: "user-1"},
		Deck:      domain.Deck{ID: "deck-1", Name: "Kanji N5"},
		Requester: domain.User{ID: "user-1", Name: "alice"},
	}
	requests.On("GetDetailByID", ctx, "req-1").Return(detail, nil)

	got, err := svc.GetRequestByID(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, "Kanji N5", got.Deck.Name)
	assert.Equal(t, "alice", got.Requester.Name)
}

func summaryFixture(id string, status domain.RequestStatus, createdAt time.Time) domain.PublicRequestSummary {
	return domain.PublicRequestSummary{
		Request: domain.Request{ID: id, Status: status, CreatedAt: createdAt},
	}
}

func TestListPublicRequestsOrdering(t *testing.T) {
	requests := new(MockRequestRepository)
	svc := NewRequestQueryService(requests)
	ctx := context.Background()

	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	requests.On("ListSummaries", ctx).Return([]domain.PublicRequestSummary{
		summaryFixture("a", domain.RequestStatusApproved, base.Add(4*time.Hour)),
		summaryFixture("b", domain.RequestStatusPending, base.Add(1*time.Hour)),
		summaryFixture("c", domain.RequestStatusRejected, base.Add(3*time.Hour)),
		summaryFixture("d", domain.RequestStatusPending, base.Add(2*time.Hour)),
	}, nil)

	got, err := svc.ListPublicRequestsForAdmin(ctx, nil)
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	// Pending first, newest first within each group.
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids)
}

func TestListPublicRequestsFiltersHidden(t *testing.T) {
	requests := new(MockRequestRepository)
	svc := NewRequestQueryService(requests)
	ctx := context.Background()

	now := time.Now()
	requests.On("ListSummaries", ctx).Return([]domain.PublicRequestSummary{
		summaryFixture("keep", domain.RequestStatusPending, now),
		summaryFixture("hide", domain.RequestStatusPending, now),
	}, nil)

	got, err := svc.ListPublicRequestsForAdmin(ctx, []string{"hide", "unknown"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].ID)
}

func TestSortRequestSummariesStable(t *testing.T) {
	ts := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	items := []domain.PublicRequestSummary{
		summaryFixture("first", domain.RequestStatusPending, ts),
		summaryFixture("second", domain.RequestStatusPending, ts),
	}
	SortRequestSummaries(items)
	// Equal keys keep their input order.
	assert.Equal(t, "first", items[0].ID)
	assert.Equal(t, "second", items[1].ID)
}
