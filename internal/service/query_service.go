package service

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/deckflow-admin/internal/domain"
	"github.com/spec-kit/deckflow-admin/internal/repository"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// RequestQueryService is the read side for publication requests.
type RequestQueryService struct {
	requests repository.RequestRepository
}

// NewRequestQueryService constructs the service.
func NewRequestQueryService(requests repository.RequestRepository) *RequestQueryService {
	return &RequestQueryService{requests: requests}
}

// RequestPage is one page of expanded requests.
type RequestPage struct {
	Items       []domain.RequestDetail
	TotalPages  int64
	CurrentPage int
}

// ListRequests returns a page of requests with deck and user expanded.
// Page and pageSize must be positive; zero values select the defaults.
func (s *RequestQueryService) ListRequests(ctx context.Context, page, pageSize int) (*RequestPage, error) {
	if page == 0 {
		page = defaultPage
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if page < 1 || pageSize < 1 {
		return nil, apperrors.NewInvalidArgument("page and limit must be positive", map[string]any{
			"page":  page,
			"limit": pageSize,
		})
	}

	items, err := s.requests.ListDetails(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.requests.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}

	return &RequestPage{
		Items:       items,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

// GetRequestByID returns one request with deck and user expanded.
func (s *RequestQueryService) GetRequestByID(ctx context.Context, id string) (*domain.RequestDetail, error) {
	detail, err := s.requests.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": id})
		}
		return nil, err
	}
	return detail, nil
}

// ListPublicRequestsForAdmin returns all requests minus hiddenIds, annotated
// with owner display info. Ordering is part of the contract: pending items
// sort before any terminal-status item; newer createdAt first within groups.
func (s *RequestQueryService) ListPublicRequestsForAdmin(ctx context.Context, hiddenIDs []string) ([]domain.PublicRequestSummary, error) {
	summaries, err := s.requests.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	hidden := make(map[string]struct{}, len(hiddenIDs))
	for _, id := range hiddenIDs {
		hidden[id] = struct{}{}
	}

	visible := make([]domain.PublicRequestSummary, 0, len(summaries))
	for _, summary := range summaries {
		if _, skip := hidden[summary.ID]; skip {
			continue
		}
		visible = append(visible, summary)
	}

	SortRequestSummaries(visible)
	return visible, nil
}

// SortRequestSummaries orders pending-first, then createdAt descending.
func SortRequestSummaries(items []domain.PublicRequestSummary) {
	sort.SliceStable(items, func(i, j int) bool {
		iPending := items[i].Status == domain.RequestStatusPending
		jPending := items[j].Status == domain.RequestStatusPending
		if iPending != jPending {
			return iPending
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
