package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/deckflow-admin/internal/domain"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

func TestCreatePackageValidation(t *testing.T) {
	svc := NewPackageService(new(MockPackageRepository))
	ctx := context.Background()

	cases := []struct {
		name  string
		input PackageInput
	}{
		{"blank name", PackageInput{Name: "  ", Price: 10, DurationDays: 30}},
		{"zero price", PackageInput{Name: "Pro", Price: 0, DurationDays: 30}},
		{"negative price", PackageInput{Name: "Pro", Price: -5, DurationDays: 30}},
		{"zero duration", PackageInput{Name: "Pro", Price: 10, DurationDays: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input)
			assert.True(t, apperrors.IsCode(err, "INVALID_ARGUMENT"))
		})
	}
}

func TestCreatePackageTrimsAndDefaults(t *testing.T) {
	packages := new(MockPackageRepository)
	svc := NewPackageService(packages)
	ctx := context.Background()

	packages.On("Create", ctx, mock.AnythingOfType("*domain.Package")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Package).ID = "pkg-1"
	}).Return(nil)

	pkg, err := svc.Create(ctx, PackageInput{Name: "  Pro  ", Type: "monthly", Price: 9.99, DurationDays: 30})
	require.NoError(t, err)
	assert.Equal(t, "Pro", pkg.Name)
	assert.Equal(t, "pkg-1", pkg.ID)
	assert.NotNil(t, pkg.Features)
	assert.Empty(t, pkg.Features)
}

func TestUpdatePackageNotFound(t *testing.T) {
	packages := new(MockPackageRepository)
	svc := NewPackageService(packages)
	ctx := context.Background()

	packages.On("GetByID", ctx, "missing").Return(nil, pgx.ErrNoRows)

	_, err := svc.Update(ctx, "missing", PackageInput{Name: "Pro", Price: 10, DurationDays: 30})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestUpdatePackageOverwritesFields(t *testing.T) {
	packages := new(MockPackageRepository)
	svc := NewPackageService(packages)
	ctx := context.Background()

	existing := &domain.Package{ID: "pkg-1", Name: "Old", Price: 5, DurationDays: 7}
	packages.On("GetByID", ctx, "pkg-1").Return(existing, nil)
	packages.On("Update", ctx, mock.AnythingOfType("*domain.Package")).Return(nil)

	pkg, err := svc.Update(ctx, "pkg-1", PackageInput{
		Name:         "New",
		Type:         "yearly",
		Price:        99,
		DurationDays: 365,
		Features:     []string{"unlimited decks"},
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", pkg.Name)
	assert.Equal(t, 365, pkg.DurationDays)
	assert.True(t, pkg.IsActive)
	packages.AssertExpectations(t)
}

func TestDeletePackageNotFound(t *testing.T) {
	packages := new(MockPackageRepository)
	svc := NewPackageService(packages)
	ctx := context.Background()

	packages.On("Delete", ctx, "missing").Return(pgx.ErrNoRows)

	err := svc.Delete(ctx, "missing")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
