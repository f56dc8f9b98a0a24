package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/deckflow-admin/internal/domain"
	"github.com/spec-kit/deckflow-admin/internal/events"
	"github.com/spec-kit/deckflow-admin/internal/persistence"
	"github.com/spec-kit/deckflow-admin/internal/repository"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

const (
	pendingPayoutsCacheKey = "feeds:payouts:pending"
	payoutHistoryCacheKey  = "feeds:payouts:history"
)

// NotificationService aggregates the two admin triage feeds: public deck
// submissions and pending payout requests. The payout feed is polled by the
// dashboard on a short interval, so it is served through a Redis cache.
type NotificationService struct {
	queries    *RequestQueryService
	payments   repository.PaymentRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NotificationDependencies bundles collaborators for the aggregator.
type NotificationDependencies struct {
	Queries     *RequestQueryService
	PaymentRepo repository.PaymentRepository
	Cache       *persistence.Redis
	CacheTTL    time.Duration
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &NotificationService{
		queries:    deps.Queries,
		payments:   deps.PaymentRepo,
		cache:      deps.Cache,
		cacheTTL:   ttl,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// DeckRequestNotifications derives the deck-submission feed. Dismissals are
// client-held hiddenIds; nothing is persisted for them.
func (s *NotificationService) DeckRequestNotifications(ctx context.Context, hiddenIDs []string) ([]domain.Notification, error) {
	summaries, err := s.queries.ListPublicRequestsForAdmin(ctx, hiddenIDs)
	if err != nil {
		return nil, err
	}

	feed := make([]domain.Notification, 0, len(summaries))
	for _, summary := range summaries {
		priority := 0
		if summary.Status == domain.RequestStatusPending {
			priority = 1
		}
		feed = append(feed, domain.Notification{
			ID:          summary.ID,
			ActorID:     summary.UserID,
			ActorName:   summary.OwnerName,
			ActorAvatar: summary.OwnerAvatar,
			DeckID:      summary.DeckID,
			DeckTitle:   summary.DeckName,
			Message:     fmt.Sprintf("%s requested to publish deck %s", summary.OwnerName, summary.DeckName),
			SortTime:    summary.CreatedAt,
			Priority:    priority,
			IsRead:      false,
		})
	}
	return feed, nil
}

// PendingPayouts returns payout transactions awaiting action, read through
// the feed cache when available.
func (s *NotificationService) PendingPayouts(ctx context.Context) ([]domain.PayoutWithUser, error) {
	if cached, ok := s.cacheGet(ctx, pendingPayoutsCacheKey); ok {
		return cached, nil
	}
	payouts, err := s.payments.ListPendingPayouts(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, pendingPayoutsCacheKey, payouts)
	return payouts, nil
}

// PayoutHistory returns processed payout transactions, newest first.
func (s *NotificationService) PayoutHistory(ctx context.Context) ([]domain.PayoutWithUser, error) {
	if cached, ok := s.cacheGet(ctx, payoutHistoryCacheKey); ok {
		return cached, nil
	}
	history, err := s.payments.ListPayoutHistory(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, payoutHistoryCacheKey, history)
	return history, nil
}

// RejectPayout moves a pending payout to its terminal rejected state. The
// reason is mandatory; cached pending/history views are invalidated.
func (s *NotificationService) RejectPayout(ctx context.Context, transactionID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.NewInvalidArgument("reason is required", nil)
	}
	if strings.TrimSpace(transactionID) == "" {
		return apperrors.NewInvalidArgument("transactionId is required", nil)
	}

	tx, err := s.payments.GetByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("transaction", map[string]any{"transaction_id": transactionID})
		}
		return err
	}
	if tx.Type != domain.TransactionTypePayout {
		return apperrors.NewInvalidArgument("transaction is not a payout", map[string]any{"transaction_id": transactionID})
	}
	if tx.Status != domain.TransactionStatusPending {
		return apperrors.NewConflict("payout already processed", map[string]any{
			"transaction_id": transactionID,
			"status":         tx.Status,
		})
	}

	if err := s.payments.RejectPayout(ctx, transactionID, strings.TrimSpace(reason)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewConflict("payout already processed", map[string]any{"transaction_id": transactionID})
		}
		return err
	}

	s.InvalidatePayoutFeeds(ctx)

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPayoutRejected,
			SubjectID: transactionID,
			Timestamp: time.Now(),
			Payload: events.PayoutRejectedPayload{
				Reason: reason,
				Amount: tx.Amount,
			},
		})
	}
	return nil
}

// Refresh recomputes the cached payout feeds; called by the feed worker on
// the polling interval.
func (s *NotificationService) Refresh(ctx context.Context) error {
	pending, err := s.payments.ListPendingPayouts(ctx)
	if err != nil {
		return err
	}
	s.cacheSet(ctx, pendingPayoutsCacheKey, pending)

	history, err := s.payments.ListPayoutHistory(ctx)
	if err != nil {
		return err
	}
	s.cacheSet(ctx, payoutHistoryCacheKey, history)
	return nil
}

// InvalidatePayoutFeeds drops the cached pending/history views.
func (s *NotificationService) InvalidatePayoutFeeds(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, pendingPayoutsCacheKey, payoutHistoryCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate payout feed cache", zap.Error(err))
	}
}

func (s *NotificationService) cacheGet(ctx context.Context, key string) ([]domain.PayoutWithUser, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("payout feed cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var items []domain.PayoutWithUser
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (s *NotificationService) cacheSet(ctx context.Context, key string, items []domain.PayoutWithUser) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("payout feed cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// SearchNotifications is a pure case-insensitive substring filter over
// message, deck title and actor name.
func SearchNotifications(list []domain.Notification, term string) []domain.Notification {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return list
	}
	result := make([]domain.Notification, 0, len(list))
	for _, n := range list {
		if strings.Contains(strings.ToLower(n.Message), needle) ||
			strings.Contains(strings.ToLower(n.DeckTitle), needle) ||
			strings.Contains(strings.ToLower(n.ActorName), needle) {
			result = append(result, n)
		}
	}
	return result
}

// NotificationPage is one slice of the notification feed.
type NotificationPage struct {
	Items       []domain.Notification
	TotalPages  int
	CurrentPage int
}

// PaginateNotifications slices the feed by offset. Pages are clamped
// server-side; out-of-range pages return an empty page rather than an error.
func PaginateNotifications(list []domain.Notification, page, pageSize int) NotificationPage {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	totalPages := (len(list) + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start >= len(list) {
		return NotificationPage{Items: []domain.Notification{}, TotalPages: totalPages, CurrentPage: page}
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return NotificationPage{Items: list[start:end], TotalPages: totalPages, CurrentPage: page}
}
