package domain

import "time"

// UserRole distinguishes reviewing admins from submitting customers.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleCustomer UserRole = "CUSTOMER"
)

// User is the identity model for both request submitters and reviewers.
type User struct {
	ID           string
	Name         string
	Email        string
	AvatarURL    *string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountStats summarizes account growth for the dashboard.
type AccountStats struct {
	TotalAccounts        int64
	NewAccountsThisMonth int64
	GrowthPercentage     float64
}
