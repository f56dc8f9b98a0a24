package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/deckflow-admin/internal/auth"
	"github.com/spec-kit/deckflow-admin/internal/config"
	"github.com/spec-kit/deckflow-admin/internal/domain"
	"github.com/spec-kit/deckflow-admin/internal/repository"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

// AuthService coordinates login, password changes and account reads.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// ChangePassword verifies the old password then stores a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewInvalidArgument("new password must be at least 8 characters", nil)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, oldPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// ListAccounts returns users, optionally filtered by role.
func (s *AuthService) ListAccounts(ctx context.Context, role *domain.UserRole, page, pageSize int) ([]domain.User, error) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return s.users.List(ctx, role, pageSize, (page-1)*pageSize)
}

// AccountStats summarizes total accounts and this month's growth.
func (s *AuthService) AccountStats(ctx context.Context) (*domain.AccountStats, error) {
	total, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	newThisMonth, err := s.users.CountCreatedSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	var growth float64
	if previous := total - newThisMonth; previous > 0 {
		growth = float64(newThisMonth) / float64(previous) * 100
	} else if newThisMonth > 0 {
		growth = 100
	}

	return &domain.AccountStats{
		TotalAccounts:        total,
		NewAccountsThisMonth: newThisMonth,
		GrowthPercentage:     growth,
	}, nil
}
