package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/deckflow-admin/internal/api/dto"
	"github.com/spec-kit/deckflow-admin/internal/service"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

// PackagesHandler manages subscription package endpoints.
type PackagesHandler struct {
	packages *service.PackageService
}

// NewPackagesHandler constructs handler.
func NewPackagesHandler(packages *service.PackageService) *PackagesHandler {
	return &PackagesHandler{packages: packages}
}

// ListPackages GET /packages.
func (h *PackagesHandler) ListPackages(c *fiber.Ctx) error {
	pkgs, err := h.packages.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromPackages(pkgs))
}

// CreatePackage POST /packages.
func (h *PackagesHandler) CreatePackage(c *fiber.Ctx) error {
	var payload dto.PackagePayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}
	pkg, err := h.packages.Create(c.Context(), packageInput(payload))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromPackage(pkg))
}

// UpdatePackage PUT /packages/:packageId.
func (h *PackagesHandler) UpdatePackage(c *fiber.Ctx) error {
	var payload dto.PackagePayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}
	pkg, err := h.packages.Update(c.Context(), c.Params("packageId"), packageInput(payload))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromPackage(pkg))
}

// DeletePackage DELETE /packages/:packageId.
func (h *PackagesHandler) DeletePackage(c *fiber.Ctx) error {
	if err := h.packages.Delete(c.Context(), c.Params("packageId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Package deleted successfully"})
}

func packageInput(payload dto.PackagePayload) service.PackageInput {
	return service.PackageInput{
		Name:         payload.Name,
		Type:         payload.Type,
		DurationDays: payload.DurationDays,
		Price:        payload.Price,
		Features:     payload.Features,
		IsActive:     payload.IsActive,
	}
}
