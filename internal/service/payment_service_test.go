package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/deckflow-admin/internal/domain"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

func newPaymentFixture(payments *MockPaymentRepository) *PaymentService {
	return NewPaymentService(payments, nil, 5*time.Second, zap.NewNop())
}

func TestMonthlyRevenueZeroFills(t *testing.T) {
	payments := new(MockPaymentRepository)
	svc := newPaymentFixture(payments)
	ctx := context.Background()

	payments.On("MonthlyRevenue", ctx, 2026).Return(map[int]float64{1: 100, 6: 250.5}, nil)

	buckets, err := svc.MonthlyRevenue(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, buckets, 12)
	assert.Equal(t, domain.RevenueBucket{Name: "Jan", Revenue: 100}, buckets[0])
	assert.Equal(t, domain.RevenueBucket{Name: "Jun", Revenue: 250.5}, buckets[5])
	assert.Equal(t, domain.RevenueBucket{Name: "Dec", Revenue: 0}, buckets[11])
}

func TestQuarterlyRevenueZeroFills(t *testing.T) {
	payments := new(MockPaymentRepository)
	svc := newPaymentFixture(payments)
	ctx := context.Background()

	payments.On("QuarterlyRevenue", ctx, 2026).Return(map[int]float64{2: 400}, nil)

	buckets, err := svc.QuarterlyRevenue(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, buckets, 4)
	assert.Equal(t, "Q1", buckets[0].Name)
	assert.Equal(t, float64(0), buckets[0].Revenue)
	assert.Equal(t, float64(400), buckets[1].Revenue)
}

func TestRevenueRejectsImplausibleYear(t *testing.T) {
	svc := newPaymentFixture(new(MockPaymentRepository))
	ctx := context.Background()

	for _, year := range []int{1999, 2101, -4} {
		_, err := svc.MonthlyRevenue(ctx, year)
		assert.True(t, apperrors.IsCode(err, "INVALID_ARGUMENT"), "year %d", year)
		_, err = svc.QuarterlyRevenue(ctx, year)
		assert.True(t, apperrors.IsCode(err, "INVALID_ARGUMENT"), "year %d", year)
	}
}

func TestTotalRevenue(t *testing.T) {
	payments := new(MockPaymentRepository)
	svc := newPaymentFixture(payments)
	ctx := context.Background()

	payments.On("TotalRevenue", ctx).Return(1234.56, nil)

	total, err := svc.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1234.56, total)
}

func TestPackageDistributionDefaultsToCurrentYear(t *testing.T) {
	payments := new(MockPaymentRepository)
	svc := newPaymentFixture(payments)
	ctx := context.Background()

	year := time.Now().Year()
	counts := []domain.PackageCount{{Name: "Pro", Value: 12}, {Name: "Basic", Value: 30}}
	payments.On("PackageDistribution", ctx, year).Return(counts, nil)

	got, err := svc.PackageDistribution(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, year, got.Year)
	assert.Equal(t, counts, got.Data)
}

func TestPackageDistributionExplicitYear(t *testing.T) {
	payments := new(MockPaymentRepository)
	svc := newPaymentFixture(payments)
	ctx := context.Background()

	payments.On("PackageDistribution", ctx, 2025).Return([]domain.PackageCount{}, nil)

	got, err := svc.PackageDistribution(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, got.Year)
	assert.Empty(t, got.Data)
}
