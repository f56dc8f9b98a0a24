package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/deckflow-admin/internal/domain"
	"github.com/spec-kit/deckflow-admin/internal/repository"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

// PackageService manages subscription packages.
type PackageService struct {
	packages repository.PackageRepository
}

// NewPackageService constructs the service.
func NewPackageService(packages repository.PackageRepository) *PackageService {
	return &PackageService{packages: packages}
}

// PackageInput describes create/update payloads.
type PackageInput struct {
	Name         string
	Type         string
	DurationDays int
	Price        float64
	Features     []string
	IsActive     bool
}

func validatePackageInput(input PackageInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewInvalidArgument("name is required", nil)
	}
	if input.Price <= 0 {
		return apperrors.NewInvalidArgument("price must be positive", map[string]any{"price": input.Price})
	}
	if input.DurationDays <= 0 {
		return apperrors.NewInvalidArgument("duration must be positive", map[string]any{"duration": input.DurationDays})
	}
	return nil
}

// List returns all packages, newest first.
func (s *PackageService) List(ctx context.Context) ([]domain.Package, error) {
	return s.packages.List(ctx)
}

// Create validates and persists a new package.
func (s *PackageService) Create(ctx context.Context, input PackageInput) (*domain.Package, error) {
	if err := validatePackageInput(input); err != nil {
		return nil, err
	}
	pkg := &domain.Package{
		Name:         strings.TrimSpace(input.Name),
		Type:         strings.TrimSpace(input.Type),
		DurationDays: input.DurationDays,
		Price:        input.Price,
		Features:     input.Features,
		IsActive:     input.IsActive,
	}
	if pkg.Features == nil {
		pkg.Features = []string{}
	}
	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Update validates and persists changes to an existing package.
func (s *PackageService) Update(ctx context.Context, id string, input PackageInput) (*domain.Package, error) {
	if err := validatePackageInput(input); err != nil {
		return nil, err
	}
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("package", map[string]any{"package_id": id})
		}
		return nil, err
	}

	pkg.Name = strings.TrimSpace(input.Name)
	pkg.Type = strings.TrimSpace(input.Type)
	pkg.DurationDays = input.DurationDays
	pkg.Price = input.Price
	pkg.Features = input.Features
	pkg.IsActive = input.IsActive
	if pkg.Features == nil {
		pkg.Features = []string{}
	}

	if err := s.packages.Update(ctx, pkg); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("package", map[string]any{"package_id": id})
		}
		return nil, err
	}
	return pkg, nil
}

// Delete removes a package.
func (s *PackageService) Delete(ctx context.Context, id string) error {
	if err := s.packages.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("package", map[string]any{"package_id": id})
		}
		return err
	}
	return nil
}
