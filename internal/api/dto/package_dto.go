package dto

import (
	"time"

	"github.com/spec-kit/deckflow-admin/internal/domain"
)

// PackagePayload is the create/update body.
type PackagePayload struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	DurationDays int      `json:"duration"`
	Price        float64  `json:"price"`
	Features     []string `json:"features"`
	IsActive     bool     `json:"isActive"`
}

// PackageResponse is one package row.
type PackageResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	DurationDays int       `json:"duration"`
	Price        float64   `json:"price"`
	Features     []string  `json:"features"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromPackage maps a domain package.
func FromPackage(pkg *domain.Package) PackageResponse {
	return PackageResponse{
		ID:           pkg.ID,
		Name:         pkg.Name,
		Type:         pkg.Type,
		DurationDays: pkg.DurationDays,
		Price:        pkg.Price,
		Features:     pkg.Features,
		IsActive:     pkg.IsActive,
		CreatedAt:    pkg.CreatedAt,
	}
}

// FromPackages maps a slice of packages.
func FromPackages(pkgs []domain.Package) []PackageResponse {
	result := make([]PackageResponse, 0, len(pkgs))
	for i := range pkgs {
		result = append(result, FromPackage(&pkgs[i]))
	}
	return result
}
