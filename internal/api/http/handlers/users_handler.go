package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/deckflow-admin/internal/api/dto"
	"github.com/spec-kit/deckflow-admin/internal/auth"
	"github.com/spec-kit/deckflow-admin/internal/domain"
	"github.com/spec-kit/deckflow-admin/internal/service"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

// UsersHandler serves auth and account endpoints.
type UsersHandler struct {
	authService *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{authService: authService}
}

// Login POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var payload dto.LoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}
	if payload.Email == "" || payload.Password == "" {
		return apperrors.NewInvalidArgument("email and password required", nil)
	}

	user, token, exp, err := h.authService.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      dto.FromUser(user),
	})
}

// ChangePassword POST /auth/password/change.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var payload dto.ChangePasswordPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}
	if err := h.authService.ChangePassword(c.Context(), principal.User.ID, payload.OldPassword, payload.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

// ListAccounts GET /users/accounts.
func (h *UsersHandler) ListAccounts(c *fiber.Ctx) error {
	var role *domain.UserRole
	if raw := c.Query("role"); raw != "" {
		switch strings.ToUpper(strings.TrimSpace(raw)) {
		case string(domain.RoleAdmin):
			r := domain.RoleAdmin
			role = &r
		case string(domain.RoleCustomer):
			r := domain.RoleCustomer
			role = &r
		default:
			return apperrors.NewInvalidArgument("invalid role", map[string]any{"role": raw})
		}
	}

	page, err := parsePositiveQuery(c, "page")
	if err != nil {
		return err
	}
	pageSize, err := parsePositiveQuery(c, "limit")
	if err != nil {
		return err
	}

	users, err := h.authService.ListAccounts(c.Context(), role, page, pageSize)
	if err != nil {
		return err
	}
	accounts := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		accounts = append(accounts, dto.FromUser(&users[i]))
	}
	return c.JSON(fiber.Map{"accounts": accounts})
}

// AccountStats GET /users/account-stats.
func (h *UsersHandler) AccountStats(c *fiber.Ctx) error {
	stats, err := h.authService.AccountStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.AccountStatsResponse{
		TotalAccounts:        stats.TotalAccounts,
		NewAccountsThisMonth: stats.NewAccountsThisMonth,
		GrowthPercentage:     stats.GrowthPercentage,
	})
}
