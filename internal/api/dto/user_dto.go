package dto

import "time"

// LoginPayload is the credential body.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ChangePasswordPayload is the password change body.
type ChangePasswordPayload struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// AccountStatsResponse summarizes account growth.
type AccountStatsResponse struct {
	TotalAccounts        int64   `json:"totalAccounts"`
	NewAccountsThisMonth int64   `json:"newAccountsThisMonth"`
	GrowthPercentage     float64 `json:"growthPercentage"`
}
