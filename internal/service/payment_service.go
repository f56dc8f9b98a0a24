package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/deckflow-admin/internal/domain"
	"github.com/spec-kit/deckflow-admin/internal/persistence"
	"github.com/spec-kit/deckflow-admin/internal/repository"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// PaymentService serves revenue metrics and the package distribution chart.
// The distribution is polled by the dashboard, so it goes through the feed
// cache like the payout views.
type PaymentService struct {
	payments repository.PaymentRepository
	cache    *persistence.Redis
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewPaymentService constructs the service.
func NewPaymentService(payments repository.PaymentRepository, cache *persistence.Redis, cacheTTL time.Duration, logger *zap.Logger) *PaymentService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Second
	}
	return &PaymentService{payments: payments, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// MonthlyRevenue returns 12 buckets for the given year, zero-filled.
func (s *PaymentService) MonthlyRevenue(ctx context.Context, year int) ([]domain.RevenueBucket, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	totals, err := s.payments.MonthlyRevenue(ctx, year)
	if err != nil {
		return nil, err
	}
	buckets := make([]domain.RevenueBucket, 0, 12)
	for month := 1; month <= 12; month++ {
		buckets = append(buckets, domain.RevenueBucket{
			Name:    monthNames[month-1],
			Revenue: totals[month],
		})
	}
	return buckets, nil
}

// QuarterlyRevenue returns 4 buckets for the given year, zero-filled.
func (s *PaymentService) QuarterlyRevenue(ctx context.Context, year int) ([]domain.RevenueBucket, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	totals, err := s.payments.QuarterlyRevenue(ctx, year)
	if err != nil {
		return nil, err
	}
	buckets := make([]domain.RevenueBucket, 0, 4)
	for quarter := 1; quarter <= 4; quarter++ {
		buckets = append(buckets, domain.RevenueBucket{
			Name:    fmt.Sprintf("Q%d", quarter),
			Revenue: totals[quarter],
		})
	}
	return buckets, nil
}

// TotalRevenue sums completed purchases across all time.
func (s *PaymentService) TotalRevenue(ctx context.Context) (float64, error) {
	return s.payments.TotalRevenue(ctx)
}

// PackageDistributionResult pairs the year with its chart slices.
type PackageDistributionResult struct {
	Year int                   `json:"year"`
	Data []domain.PackageCount `json:"data"`
}

// PackageDistribution returns purchases per package for a year.
func (s *PaymentService) PackageDistribution(ctx context.Context, year int) (*PackageDistributionResult, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	if err := validateYear(year); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("feeds:packages:distribution:%d", year)
	if s.cache != nil && s.cache.Client != nil {
		raw, err := s.cache.Client.Get(ctx, key).Bytes()
		if err == nil {
			var cached PackageDistributionResult
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("distribution cache read failed", zap.Error(err))
		}
	}

	data, err := s.payments.PackageDistribution(ctx, year)
	if err != nil {
		return nil, err
	}
	result := &PackageDistributionResult{Year: year, Data: data}

	if s.cache != nil && s.cache.Client != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := s.cache.Client.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("distribution cache write failed", zap.Error(err))
			}
		}
	}
	return result, nil
}

// Refresh warms the current-year distribution cache; called by the feed
// worker on the polling interval.
func (s *PaymentService) Refresh(ctx context.Context) error {
	if s.cache == nil || s.cache.Client == nil {
		return nil
	}
	year := time.Now().Year()
	key := fmt.Sprintf("feeds:packages:distribution:%d", year)
	data, err := s.payments.PackageDistribution(ctx, year)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(&PackageDistributionResult{Year: year, Data: data})
	if err != nil {
		return err
	}
	return s.cache.Client.Set(ctx, key, raw, s.cacheTTL).Err()
}

func validateYear(year int) error {
	if year < 2000 || year > 2100 {
		return apperrors.NewInvalidArgument("invalid year", map[string]any{"year": year})
	}
	return nil
}
